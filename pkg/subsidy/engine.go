// Package subsidy implements the redemption engine: the orchestration that
// turns "spend stored value" and "grant access to content" into one
// effectively-atomic operation. The two side effects live in different
// systems (an append-only ledger and a remote enrollment API), so atomicity
// rests on idempotency keys, a forward-only state machine, and compensating
// rollback rather than a database transaction spanning both.
package subsidy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/subsidy-redemptions/pkg/enrollment"
	"github.com/chris/subsidy-redemptions/pkg/events"
	"github.com/chris/subsidy-redemptions/pkg/mapping"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/remediation"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/google/uuid"
)

//go:generate mockery --name PriceResolver --output ./mocks --outpkg mocks

// PriceResolver prices content for a customer in integer minor units.
type PriceResolver interface {
	PriceForContent(ctx context.Context, customerUUID uuid.UUID, contentKey string) (int64, error)
}

// Engine orchestrates pricing, balance checks, ledger writes, and
// enrollment provisioning into one logical redemption operation. It holds
// no in-process locks: correctness under concurrency is delegated entirely
// to the storage layer's atomic insert-or-fetch-existing on the
// idempotency key.
type Engine struct {
	Store       storage.ApiStore
	Pricing     PriceResolver
	Provisioner enrollment.Provisioner
	Events      events.Publisher
	Remediation remediation.Queue
}

// NewEngine creates a redemption Engine. Events and Remediation may be nil;
// both degrade to no-ops.
func NewEngine(store storage.ApiStore, pricing PriceResolver, provisioner enrollment.Provisioner, publisher events.Publisher, queue remediation.Queue) *Engine {
	if publisher == nil {
		publisher = &events.NoOpPublisher{}
	}
	if queue == nil {
		queue = &remediation.NoOpQueue{}
	}
	return &Engine{
		Store:       store,
		Pricing:     pricing,
		Provisioner: provisioner,
		Events:      publisher,
		Remediation: queue,
	}
}

// IsRedeemable reports whether the subsidy's current balance covers the
// content's price, and returns the price either way so callers can display
// it. The boundary is inclusive: balance == price is redeemable. No side
// effects; safe to call any number of times.
func (e *Engine) IsRedeemable(ctx context.Context, subsidy *models.Subsidy, contentKey string) (bool, int64, error) {
	price, err := e.Pricing.PriceForContent(ctx, subsidy.EnterpriseCustomerUUID, contentKey)
	if err != nil {
		return false, 0, err
	}

	balance, err := e.Store.CurrentBalance(ctx, subsidy)
	if err != nil {
		return false, 0, fmt.Errorf("failed to compute balance for subsidy %s: %w", subsidy.UUID, err)
	}

	return balance >= price, price, nil
}

// GetRedemption returns the committed transaction representing the
// redemption of the content by the learner against this subsidy, or nil
// when no such transaction exists. Pending and failed rows are invisible.
func (e *Engine) GetRedemption(ctx context.Context, subsidy *models.Subsidy, learnerID, contentKey string) (*models.Transaction, error) {
	tx, err := e.Store.FindCommittedRedemption(ctx, subsidy.UUID, learnerID, contentKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up redemption: %w", err)
	}
	return tx, nil
}

// Redeem spends subsidy value to grant the learner access to the content.
// It is a get-or-create style operation: the returned bool is true only
// when this call created the committed transaction. A nil transaction with
// a nil error means the subsidy cannot cover the content's price; pricing
// and provisioning failures propagate unmodified so the caller can tell a
// missing price from a transient outage.
func (e *Engine) Redeem(ctx context.Context, subsidy *models.Subsidy, learnerID, contentKey string, policyUUID uuid.UUID, idempotencyKey string, metadata map[string]string) (*models.Transaction, bool, error) {
	if existing, err := e.GetRedemption(ctx, subsidy, learnerID, contentKey); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, nil
	}

	redeemable, price, err := e.IsRedeemable(ctx, subsidy, contentKey)
	if err != nil {
		return nil, false, err
	}
	if !redeemable {
		return nil, false, nil
	}

	quantity := -price
	if idempotencyKey == "" {
		idempotencyKey = TransactionIdempotencyKey(subsidy.UUID, quantity, learnerID, contentKey, policyUUID)
	}

	tx, created, err := e.Store.CreateTransaction(ctx, &models.Transaction{
		IdempotencyKey:          idempotencyKey,
		Quantity:                quantity,
		SubsidyUUID:             subsidy.UUID,
		EnterpriseCustomerUUID:  subsidy.EnterpriseCustomerUUID,
		LmsUserID:               learnerID,
		ContentKey:              contentKey,
		SubsidyAccessPolicyUUID: policyUUID,
		Metadata:                metadata,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create ledger transaction: %w", err)
	}
	if !created && tx.State == models.COMMITTED {
		// A concurrent identical request won the race and already committed.
		return tx, false, nil
	}

	// From here on, a pending row exists. Provision first; the ledger
	// commit must never precede a successful enrollment.
	referenceID, err := e.Provisioner.Enroll(ctx, learnerID, contentKey, tx)
	if err != nil {
		e.rollback(ctx, tx)
		return nil, false, err
	}

	committed, err := e.CommitTransaction(ctx, tx, referenceID, models.EnrollmentReferenceType)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotPending) {
			// A concurrent identical request committed this row between our
			// create and our commit. Its outcome is ours; observe it rather
			// than rolling back a committed redemption.
			current, getErr := e.Store.GetTransactionByIdempotencyKey(ctx, tx.IdempotencyKey)
			if getErr == nil && current.State == models.COMMITTED {
				return current, false, nil
			}
		}
		e.rollback(ctx, tx)
		return nil, false, err
	}

	if err := e.Events.Publish(ctx, events.Event{
		Type:        events.TransactionCommitted,
		Transaction: mapping.ToApiTransaction(committed),
	}); err != nil {
		slog.Error("failed to publish committed event", "transaction", committed.UUID, "error", err)
	}

	return committed, true, nil
}

// CommitTransaction finalizes a pending transaction: it records the
// external enrollment reference and transitions the state to committed,
// returning the new snapshot. A referenceID without a referenceType is an
// ErrInvalidArgument; the pair comes together or not at all, and the
// transaction's state is left untouched on contract violations.
func (e *Engine) CommitTransaction(ctx context.Context, tx *models.Transaction, referenceID, referenceType string) (*models.Transaction, error) {
	if referenceID != "" && referenceType == "" {
		return nil, fmt.Errorf("a reference_id was provided without a reference_type: %w", ErrInvalidArgument)
	}
	committed, err := e.Store.CommitTransaction(ctx, tx.IdempotencyKey, referenceID, referenceType)
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction %s: %w", tx.UUID, err)
	}
	return committed, nil
}

// rollback voids a pending transaction after a provisioning or commit
// failure. When rollback itself fails, the row is handed to the
// remediation queue rather than masked; the caller still propagates the
// original error.
func (e *Engine) rollback(ctx context.Context, tx *models.Transaction) {
	if err := e.Store.RollbackTransaction(ctx, tx.IdempotencyKey); err != nil {
		slog.Error("failed to roll back transaction, enqueueing for remediation",
			"transaction", tx.UUID, "idempotency_key", tx.IdempotencyKey, "error", err)
		if qErr := e.Remediation.EnqueueTransaction(ctx, mapping.ToApiTransaction(tx)); qErr != nil {
			slog.Error("failed to enqueue transaction for remediation",
				"transaction", tx.UUID, "error", qErr)
		}
	}
}
