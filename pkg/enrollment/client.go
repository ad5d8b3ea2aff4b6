// Package enrollment provisions access to content for a learner by calling
// the LMS bulk-enrollment API. Provisioning is idempotent on the LMS side,
// keyed by the ledger transaction UUID that is always passed through.
package enrollment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/chris/subsidy-redemptions/pkg/models"
)

// ReferenceIDField is the field in the bulk enrollment response that carries
// the reference to the newly created enrollment record.
const ReferenceIDField = "enterprise_fulfillment_source_uuid"

//go:generate mockery --name Provisioner --output ./mocks --outpkg mocks

// Provisioner defines the interface for granting a learner access to
// content, returning an opaque external reference id on success. It must be
// safely re-callable with the same transaction.
type Provisioner interface {
	Enroll(ctx context.Context, learnerID, contentKey string, tx *models.Transaction) (string, error)
}

// EnrollmentError is thrown if something goes wrong trying to create an
// enrollment: the LMS answered, but with an unusable payload.
type EnrollmentError struct {
	Detail string
}

func (e *EnrollmentError) Error() string {
	return fmt.Sprintf("enrollment failed: %s", e.Detail)
}

// TransportError wraps a non-2xx response from the LMS, preserving the
// original status and body for the caller's retry decision.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("enrollment service returned status %d: %s", e.StatusCode, e.Body)
}

// Client is an HTTP client for the LMS enterprise enrollment API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new enrollment Client against the given LMS base URL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: baseURL, HTTPClient: httpClient}
}

// Make sure we conform to the interface
var _ Provisioner = (*Client)(nil)

type enrollmentInfo struct {
	UserID        string `json:"user_id"`
	CourseRunKey  string `json:"course_run_key"`
	TransactionID string `json:"transaction_id"`
}

type bulkEnrollRequest struct {
	EnrollmentsInfo []enrollmentInfo `json:"enrollments_info"`
}

type bulkEnrollResponse struct {
	Successes []map[string]string `json:"successes"`
}

func (c *Client) bulkEnrollURL(tx *models.Transaction) string {
	return fmt.Sprintf(
		"%s/enterprise/api/v1/enterprise-customer/%s/enroll_learners_in_courses/",
		c.BaseURL, tx.EnterpriseCustomerUUID,
	)
}

// Enroll creates a single enrollment for the learner from a pending ledger
// transaction. The transaction UUID rides along as the LMS-side idempotency
// key, so a retry after a timed-out success lands on the same enrollment.
func (c *Client) Enroll(ctx context.Context, learnerID, contentKey string, tx *models.Transaction) (string, error) {
	payload := bulkEnrollRequest{
		EnrollmentsInfo: []enrollmentInfo{{
			UserID:        learnerID,
			CourseRunKey:  contentKey,
			TransactionID: tx.UUID.String(),
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal enrollment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bulkEnrollURL(tx), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build enrollment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call enrollment service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result bulkEnrollResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode enrollment response: %w", err)
	}

	if len(result.Successes) != 1 {
		return "", &EnrollmentError{Detail: "response should contain exactly one successful enrollment"}
	}
	referenceID, ok := result.Successes[0][ReferenceIDField]
	if !ok || referenceID == "" {
		return "", &EnrollmentError{Detail: fmt.Sprintf("response missing a reference ID to the created object (%s)", ReferenceIDField)}
	}

	return referenceID, nil
}
