package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// cacheTTL controls how long content metadata responses are served from
// memory. Pricing changes infrequently; a minute keeps the catalog service
// out of the hot path.
const cacheTTL = time.Minute

type cacheKey struct {
	customerUUID      uuid.UUID
	contentIdentifier string
}

type cacheEntry struct {
	response api.ContentMetadataResponse
	expires  time.Time
}

// ContentHandler serves the customer-scoped content metadata endpoint.
type ContentHandler struct {
	Fetcher pricing.MetadataFetcher

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(fetcher pricing.MetadataFetcher) *ContentHandler {
	return &ContentHandler{
		Fetcher: fetcher,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

// GetContentMetadata handles GET /api/v1/content-metadata/{contentIdentifier}.
// It requires an enterprise_customer_uuid query parameter and returns the
// content's uuid, key, product source, and price in minor units. Content
// that is absent from the customer's catalog and content without a
// mode-matching price both map to 404.
func (h *ContentHandler) GetContentMetadata(w http.ResponseWriter, r *http.Request) {
	contentIdentifier := chi.URLParam(r, "contentIdentifier")

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

	key := cacheKey{customerUUID: customerUUID, contentIdentifier: contentIdentifier}
	now := time.Now()

	h.mu.Lock()
	if entry, ok := h.cache[key]; ok && now.Before(entry.expires) {
		h.mu.Unlock()
		writeJSON(w, http.StatusOK, entry.response)
		return
	}
	h.mu.Unlock()

	metadata, err := h.Fetcher.GetContentMetadata(r.Context(), customerUUID, contentIdentifier)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	price, err := metadata.PriceInCents()
	if err != nil {
		writeFetchError(w, err)
		return
	}

	response := api.ContentMetadataResponse{
		ContentUuid:  openapi_types.UUID(metadata.UUID),
		ContentKey:   metadata.Key,
		Source:       metadata.Source(),
		ContentPrice: price,
	}

	h.mu.Lock()
	h.cache[key] = cacheEntry{response: response, expires: now.Add(cacheTTL)}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, response)
}

// writeFetchError maps pricing errors onto HTTP statuses: NotFound in
// either flavor becomes a 404, transport failures echo the upstream status,
// and anything else is a 500.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, pricing.ErrNotFound) {
		http.Error(w, "Content not found or not priced for this customer", http.StatusNotFound)
		return
	}
	var transportErr *pricing.TransportError
	if errors.As(err, &transportErr) {
		http.Error(w, fmt.Sprintf("Failed to fetch content metadata: %v", err), transportErr.StatusCode)
		return
	}
	http.Error(w, fmt.Sprintf("Failed to fetch content metadata: %v", err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
