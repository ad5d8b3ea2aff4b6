package pricing

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when content is absent from the customer's catalog
// or carries no price for the resolved mode. Both collapse to the same
// externally observable "content not priced for this customer" condition.
var ErrNotFound = errors.New("content not priced for this customer")

// TransportError wraps any non-404 failure talking to the catalog service.
// The original status and body are preserved for the caller's retry decision.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog service returned status %d: %s", e.StatusCode, e.Body)
}
