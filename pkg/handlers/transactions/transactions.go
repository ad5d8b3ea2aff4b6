package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/mapping"
	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/chris/subsidy-redemptions/pkg/subsidy"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store  storage.ApiStore
	Engine *subsidy.Engine
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.ApiStore, engine *subsidy.Engine) *TransactionsHandler {
	return &TransactionsHandler{Store: store, Engine: engine}
}

// Redeem handles POST /api/v1/transactions/: it redeems subsidy value for a
// learner and piece of content. 201 means this request created the
// committed transaction; 200 means an identical redemption already existed;
// 422 means the subsidy cannot cover the price.
func (h *TransactionsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newTx.LmsUserId == "" || newTx.ContentKey == "" {
		http.Error(w, "lms_user_id and content_key are required", http.StatusBadRequest)
		return
	}

	sub, err := h.Store.GetSubsidy(r.Context(), uuid.UUID(newTx.SubsidyUuid))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Subsidy not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve subsidy: %v", err), http.StatusInternalServerError)
		}
		return
	}

	idempotencyKey := ""
	if newTx.IdempotencyKey != nil {
		idempotencyKey = *newTx.IdempotencyKey
	}

	tx, created, err := h.Engine.Redeem(
		r.Context(),
		sub,
		newTx.LmsUserId,
		newTx.ContentKey,
		uuid.UUID(newTx.SubsidyAccessPolicyUuid),
		idempotencyKey,
		newTx.Metadata,
	)
	if err != nil {
		writeRedeemError(w, err)
		return
	}
	if tx == nil {
		http.Error(w, "Insufficient balance to redeem this content", http.StatusUnprocessableEntity)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, mapping.ToApiTransaction(tx))
}

// GetTransaction handles GET /api/v1/transactions/{transactionUuid}.
func (h *TransactionsHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txUUID, err := uuid.Parse(chi.URLParam(r, "transactionUuid"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid transaction uuid: %v", err), http.StatusBadRequest)
		return
	}

	tx, err := h.Store.GetTransaction(r.Context(), txUUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ListTransactions handles GET /api/v1/subsidies/{subsidyUuid}/transactions/.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	subsidyUUID, err := uuid.Parse(chi.URLParam(r, "subsidyUuid"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid subsidy uuid: %v", err), http.StatusBadRequest)
		return
	}

	domainTxs, err := h.Store.ListTransactionsForSubsidy(r.Context(), subsidyUUID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	writeJSON(w, http.StatusOK, apiTxs)
}

// writeRedeemError maps engine errors onto HTTP statuses, preserving the
// distinction between "content not priced" (404) and infrastructure
// failures (upstream status or 500).
func writeRedeemError(w http.ResponseWriter, err error) {
	if errors.Is(err, pricing.ErrNotFound) {
		http.Error(w, "Content not found or not priced for this customer", http.StatusNotFound)
		return
	}
	var transportErr *pricing.TransportError
	if errors.As(err, &transportErr) {
		http.Error(w, fmt.Sprintf("Upstream failure during redemption: %v", err), http.StatusBadGateway)
		return
	}
	slog.Error("redemption failed", "error", err)
	http.Error(w, fmt.Sprintf("Failed to redeem: %v", err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
