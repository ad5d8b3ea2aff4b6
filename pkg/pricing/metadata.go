package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// PriceString is a listed price as returned by the catalog. The catalog is
// inconsistent about serializing prices: entitlements carry string decimals
// ("149.00") while course runs may carry bare numbers (149), so both
// encodings are accepted.
type PriceString string

func (p *PriceString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceString(n.String())
	return nil
}

// Course modes used to select which listed price applies to a piece of
// content. Content sourced from an external product partner is priced by
// its paid executive-education entitlement; everything else uses the
// verified seat or entitlement.
const (
	VerifiedMode           = "verified"
	ExecutiveEducationMode = "paid-executive-education"
)

// DefaultProductSource is the source reported for content with no explicit
// product source marker.
const DefaultProductSource = "edX"

// ProductSource marks content that originates from an external product
// partner rather than the default catalog.
type ProductSource struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CourseRun is one scheduled run of a course, carrying the price of its
// first enrollable paid seat.
type CourseRun struct {
	Key                          string      `json:"key"`
	FirstEnrollablePaidSeatPrice PriceString `json:"first_enrollable_paid_seat_price,omitempty"`
	IsEnrollable                 bool        `json:"is_enrollable"`
}

// Entitlement is a standalone priced mode for content without enrollable runs.
type Entitlement struct {
	Mode  string      `json:"mode"`
	Price PriceString `json:"price"`
}

// ContentMetadata is the catalog service's customer-scoped view of a piece
// of content, reduced to the fields pricing needs.
type ContentMetadata struct {
	UUID          openapi_types.UUID `json:"uuid"`
	Key           string             `json:"key"`
	ContentType   string             `json:"content_type,omitempty"`
	ProductSource *ProductSource     `json:"product_source,omitempty"`
	CourseRuns    []CourseRun        `json:"course_runs,omitempty"`
	Entitlements  []Entitlement      `json:"entitlements,omitempty"`
}

// Mode resolves which price mode applies to this content: a non-empty
// product source selects the paid executive-education mode, otherwise the
// verified mode.
func (m *ContentMetadata) Mode() string {
	if m.ProductSource != nil && m.ProductSource.Name != "" {
		return ExecutiveEducationMode
	}
	return VerifiedMode
}

// Source reports the product source name for this content, defaulting to
// the catalog's own source when no marker is present.
func (m *ContentMetadata) Source() string {
	if m.ProductSource != nil && m.ProductSource.Name != "" {
		return m.ProductSource.Name
	}
	return DefaultProductSource
}

// PriceInCents extracts the listed price matching the resolved mode and
// converts it to integer minor units. The first enrollable course run's
// paid seat price wins; entitlements are the fallback for run-less content.
// Returns ErrNotFound when no mode-matching price exists.
func (m *ContentMetadata) PriceInCents() (int64, error) {
	for _, run := range m.CourseRuns {
		if run.IsEnrollable && run.FirstEnrollablePaidSeatPrice != "" {
			return parsePriceCents(string(run.FirstEnrollablePaidSeatPrice))
		}
	}

	mode := m.Mode()
	for _, ent := range m.Entitlements {
		if ent.Mode == mode && ent.Price != "" {
			return parsePriceCents(string(ent.Price))
		}
	}

	return 0, ErrNotFound
}

// parsePriceCents converts a string decimal dollar price to integer cents.
// The conversion multiplies by 100 first and rounds half-up second, so
// "599.49" yields exactly 59949 rather than a float artifact.
func parsePriceCents(listed string) (int64, error) {
	d, err := decimal.NewFromString(listed)
	if err != nil {
		return 0, fmt.Errorf("unparseable price %q: %w", listed, err)
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
