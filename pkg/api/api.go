// Package api holds the wire models exposed by the HTTP API. They are kept
// separate from the domain models in pkg/models so storage concerns never
// leak into responses.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TransactionState mirrors models.TransactionState on the wire.
type TransactionState string

// Transaction is the API representation of a ledger transaction.
type Transaction struct {
	Uuid                    openapi_types.UUID `json:"uuid"`
	IdempotencyKey          string             `json:"idempotency_key"`
	Quantity                int64              `json:"quantity"`
	State                   TransactionState   `json:"state"`
	SubsidyUuid             openapi_types.UUID `json:"subsidy_uuid"`
	EnterpriseCustomerUuid  openapi_types.UUID `json:"enterprise_customer_uuid"`
	LmsUserId               string             `json:"lms_user_id"`
	ContentKey              string             `json:"content_key"`
	SubsidyAccessPolicyUuid openapi_types.UUID `json:"subsidy_access_policy_uuid"`
	ReferenceId             *string            `json:"reference_id,omitempty"`
	ReferenceType           *string            `json:"reference_type,omitempty"`
	Metadata                map[string]string  `json:"metadata,omitempty"`
	CreatedAt               time.Time          `json:"created"`
	UpdatedAt               time.Time          `json:"modified"`
}

// NewTransaction is the request body for the redeem endpoint.
type NewTransaction struct {
	SubsidyUuid             openapi_types.UUID `json:"subsidy_uuid"`
	LmsUserId               string             `json:"lms_user_id"`
	ContentKey              string             `json:"content_key"`
	SubsidyAccessPolicyUuid openapi_types.UUID `json:"subsidy_access_policy_uuid"`
	IdempotencyKey          *string            `json:"idempotency_key,omitempty"`
	Metadata                map[string]string  `json:"metadata,omitempty"`
}

// NewSubsidy is the request body for the subsidy provisioning endpoint.
type NewSubsidy struct {
	Title                  string             `json:"title"`
	StartingBalance        int64              `json:"starting_balance"`
	Unit                   string             `json:"unit"`
	ReferenceId            string             `json:"reference_id"`
	ReferenceType          *string            `json:"reference_type,omitempty"`
	EnterpriseCustomerUuid openapi_types.UUID `json:"enterprise_customer_uuid"`
	InternalOnly           bool               `json:"internal_only,omitempty"`
	ActiveDatetime         *time.Time         `json:"active_datetime,omitempty"`
	ExpirationDatetime     *time.Time         `json:"expiration_datetime,omitempty"`
}

// Subsidy is the API representation of a subsidy, including its computed
// current balance.
type Subsidy struct {
	Uuid                   openapi_types.UUID `json:"uuid"`
	Title                  string             `json:"title"`
	StartingBalance        int64              `json:"starting_balance"`
	CurrentBalance         int64              `json:"current_balance"`
	Unit                   string             `json:"unit"`
	ReferenceId            string             `json:"reference_id"`
	ReferenceType          string             `json:"reference_type"`
	EnterpriseCustomerUuid openapi_types.UUID `json:"enterprise_customer_uuid"`
	InternalOnly           bool               `json:"internal_only"`
	ActiveDatetime         *time.Time         `json:"active_datetime"`
	ExpirationDatetime     *time.Time         `json:"expiration_datetime"`
}

// CanRedeemResponse reports whether a subsidy can cover a piece of content.
// ContentPrice is populated even when CanRedeem is false so that callers can
// display the shortfall.
type CanRedeemResponse struct {
	CanRedeem    bool   `json:"can_redeem"`
	ContentPrice int64  `json:"content_price"`
	Unit         string `json:"unit"`
}

// ContentMetadataResponse is the subsidy-scoped view of a piece of content.
type ContentMetadataResponse struct {
	ContentUuid  openapi_types.UUID `json:"content_uuid"`
	ContentKey   string             `json:"content_key"`
	Source       string             `json:"source"`
	ContentPrice int64              `json:"content_price"`
}
