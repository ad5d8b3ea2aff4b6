package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

//go:generate mockery --name MetadataFetcher --output ./mocks --outpkg mocks

// MetadataFetcher defines the interface for fetching customer-scoped
// content metadata from the catalog service.
type MetadataFetcher interface {
	// GetContentMetadata returns the customer-scoped metadata record for a
	// content identifier (key or uuid). A 404 from the catalog maps to
	// ErrNotFound; any other non-2xx response maps to a *TransportError.
	GetContentMetadata(ctx context.Context, customerUUID uuid.UUID, contentIdentifier string) (*ContentMetadata, error)
}

// CatalogClient is an HTTP client for the enterprise catalog service.
type CatalogClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewCatalogClient creates a new CatalogClient against the given base URL.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CatalogClient{BaseURL: baseURL, HTTPClient: httpClient}
}

// Make sure we conform to the interface
var _ MetadataFetcher = (*CatalogClient)(nil)

func (c *CatalogClient) contentMetadataURL(customerUUID uuid.UUID, contentIdentifier string) string {
	return fmt.Sprintf(
		"%s/api/v1/enterprise-customer/%s/content-metadata/%s/",
		c.BaseURL, customerUUID, url.PathEscape(contentIdentifier),
	)
}

// GetContentMetadata fetches the metadata record for a piece of content as
// seen by the given customer. Content not owned by one of the customer's
// catalogs comes back as a 404 from the catalog service.
func (c *CatalogClient) GetContentMetadata(ctx context.Context, customerUUID uuid.UUID, contentIdentifier string) (*ContentMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentMetadataURL(customerUUID, contentIdentifier), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build content metadata request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("content %s for customer %s: %w", contentIdentifier, customerUUID, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var metadata ContentMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode content metadata: %w", err)
	}

	return &metadata, nil
}
