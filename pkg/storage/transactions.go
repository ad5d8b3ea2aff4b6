package storage

import (
	"context"
	"time"

	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/google/uuid"
)

// TransactionReader defines the interface for reading ledger transactions.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its UUID.
	GetTransaction(ctx context.Context, txUUID uuid.UUID) (*models.Transaction, error)

	// GetTransactionByIdempotencyKey retrieves a transaction by its unique
	// idempotency key.
	GetTransactionByIdempotencyKey(ctx context.Context, idempotencyKey string) (*models.Transaction, error)

	// FindCommittedRedemption returns the committed transaction for the
	// (subsidy, learner, content) triple, or ErrNotFound if none exists.
	// Pending and failed transactions are invisible to this query.
	FindCommittedRedemption(ctx context.Context, subsidyUUID uuid.UUID, lmsUserID, contentKey string) (*models.Transaction, error)

	// ListTransactionsForSubsidy retrieves all transactions recorded against
	// a subsidy's ledger, newest first.
	ListTransactionsForSubsidy(ctx context.Context, subsidyUUID uuid.UUID) ([]models.Transaction, error)

	// GetStuckTransactions retrieves transactions that have sat in the
	// created state for longer than maxAge. These are candidates for
	// asynchronous remediation.
	GetStuckTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for the ledger's three state
// transitions. CreateTransaction is the single load-bearing concurrency
// primitive: it must be an atomic insert-or-fetch-existing keyed on the
// idempotency key.
type TransactionWriter interface {
	// CreateTransaction records a new pending transaction under its
	// idempotency key. If a transaction with the same key already exists,
	// the existing row is returned and the boolean is false. Two concurrent
	// calls with the same key must both observe the same row.
	CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, bool, error)

	// CommitTransaction atomically transitions a pending transaction to
	// committed, recording the external enrollment reference, and returns
	// the new snapshot. Returns ErrTransactionNotPending if the transaction
	// is not in the created state.
	CommitTransaction(ctx context.Context, idempotencyKey, referenceID, referenceType string) (*models.Transaction, error)

	// RollbackTransaction voids a pending transaction by deleting it, so a
	// later attempt with the same idempotency key can start fresh. Returns
	// ErrTransactionNotPending if the transaction has already committed.
	RollbackTransaction(ctx context.Context, idempotencyKey string) error
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
