package subsidies

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/mapping"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/chris/subsidy-redemptions/pkg/subsidy"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SubsidiesHandler holds the dependencies for subsidy-related handlers.
type SubsidiesHandler struct {
	Store  storage.ApiStore
	Engine *subsidy.Engine
}

// NewSubsidiesHandler creates a new SubsidiesHandler.
func NewSubsidiesHandler(store storage.ApiStore, engine *subsidy.Engine) *SubsidiesHandler {
	return &SubsidiesHandler{Store: store, Engine: engine}
}

// ListSubsidies handles GET /api/v1/subsidies/?enterprise_customer_uuid=…
func (h *SubsidiesHandler) ListSubsidies(w http.ResponseWriter, r *http.Request) {
	rawCustomer := r.URL.Query().Get("enterprise_customer_uuid")
	if rawCustomer == "" {
		http.Error(w, "Missing required query parameter: enterprise_customer_uuid", http.StatusBadRequest)
		return
	}
	customerUUID, err := uuid.Parse(rawCustomer)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid enterprise_customer_uuid: %v", err), http.StatusBadRequest)
		return
	}

	domainSubsidies, err := h.Store.ListSubsidies(r.Context(), customerUUID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve subsidies: %v", err), http.StatusInternalServerError)
		return
	}

	apiSubsidies := make([]*api.Subsidy, len(domainSubsidies))
	for i := range domainSubsidies {
		balance, err := h.Store.CurrentBalance(r.Context(), &domainSubsidies[i])
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to compute balance: %v", err), http.StatusInternalServerError)
			return
		}
		apiSubsidies[i] = mapping.ToApiSubsidy(&domainSubsidies[i], balance)
	}

	writeJSON(w, http.StatusOK, apiSubsidies)
}

// CreateSubsidy handles POST /api/v1/subsidies/: it provisions a subsidy
// for a sales reference. 201 means this request created the subsidy; 200
// means a subsidy for the reference already existed and is returned as-is.
func (h *SubsidiesHandler) CreateSubsidy(w http.ResponseWriter, r *http.Request) {
	var newSub api.NewSubsidy
	if err := json.NewDecoder(r.Body).Decode(&newSub); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newSub.ReferenceId == "" {
		http.Error(w, "reference_id is required", http.StatusBadRequest)
		return
	}
	if newSub.Unit != string(models.UnitUSDCents) && newSub.Unit != string(models.UnitSeats) {
		http.Error(w, fmt.Sprintf("Unknown unit %q", newSub.Unit), http.StatusBadRequest)
		return
	}

	defaults := &models.Subsidy{
		Title:                  newSub.Title,
		StartingBalance:        newSub.StartingBalance,
		Unit:                   models.Unit(newSub.Unit),
		EnterpriseCustomerUUID: uuid.UUID(newSub.EnterpriseCustomerUuid),
		InternalOnly:           newSub.InternalOnly,
		ActiveDatetime:         newSub.ActiveDatetime,
		ExpirationDatetime:     newSub.ExpirationDatetime,
	}
	if newSub.ReferenceType != nil {
		defaults.ReferenceType = *newSub.ReferenceType
	}

	sub, created, err := h.Store.GetOrCreateSubsidy(r.Context(), newSub.ReferenceId, defaults)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to provision subsidy: %v", err), http.StatusInternalServerError)
		return
	}

	balance, err := h.Store.CurrentBalance(r.Context(), sub)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute balance: %v", err), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, mapping.ToApiSubsidy(sub, balance))
}

// GetSubsidy handles GET /api/v1/subsidies/{subsidyUuid}/.
func (h *SubsidiesHandler) GetSubsidy(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.subsidyFromPath(w, r)
	if !ok {
		return
	}

	balance, err := h.Store.CurrentBalance(r.Context(), sub)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute balance: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiSubsidy(sub, balance))
}

// CanRedeem handles GET /api/v1/subsidies/{subsidyUuid}/can_redeem/?content_key=…
// It answers whether the subsidy's balance covers the content's price and
// reports the price either way.
func (h *SubsidiesHandler) CanRedeem(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.subsidyFromPath(w, r)
	if !ok {
		return
	}

	contentKey := r.URL.Query().Get("content_key")
	if contentKey == "" {
		http.Error(w, "Missing required query parameter: content_key", http.StatusBadRequest)
		return
	}

	redeemable, price, err := h.Engine.IsRedeemable(r.Context(), sub, contentKey)
	if err != nil {
		if errors.Is(err, pricing.ErrNotFound) {
			http.Error(w, "Content not found or not priced for this customer", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to check redeemability: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, api.CanRedeemResponse{
		CanRedeem:    redeemable,
		ContentPrice: price,
		Unit:         string(sub.Unit),
	})
}

func (h *SubsidiesHandler) subsidyFromPath(w http.ResponseWriter, r *http.Request) (*models.Subsidy, bool) {
	subsidyUUID, err := uuid.Parse(chi.URLParam(r, "subsidyUuid"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid subsidy uuid: %v", err), http.StatusBadRequest)
		return nil, false
	}

	sub, err := h.Store.GetSubsidy(r.Context(), subsidyUUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Subsidy not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve subsidy: %v", err), http.StatusInternalServerError)
		}
		return nil, false
	}

	return sub, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
