package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionState defines the possible states of a ledger transaction.
type TransactionState string

const (
	// CREATED is the pending state: value has been earmarked but the
	// enrollment side effect has not yet been confirmed.
	CREATED TransactionState = "created"
	// COMMITTED is terminal: the enrollment succeeded and the debit counts
	// toward the subsidy balance.
	COMMITTED TransactionState = "committed"
	// FAILED marks a transaction whose enrollment could not be provisioned.
	FAILED TransactionState = "failed"
)

// Unit defines how a subsidy's stored value is denominated.
type Unit string

const (
	UnitUSDCents Unit = "usd_cents"
	UnitSeats    Unit = "seats"
)

// SubsidyReferenceTypeOpportunityProduct identifies the originating
// salesforce opportunity product as the provenance of a subsidy.
const SubsidyReferenceTypeOpportunityProduct = "opportunity_product_id"

// EnrollmentReferenceType is the reference_type recorded on a committed
// transaction pointing at the fulfillment record in the enrollment system.
const EnrollmentReferenceType = "enterprise_fulfillment_source_uuid"

// Subsidy is a named, bounded pool of stored value belonging to one
// enterprise customer. Its balance is never mutated directly; value moves
// only by committing transactions against its ledger.
type Subsidy struct {
	UUID                   uuid.UUID  `dynamodbav:"uuid"`
	Title                  string     `dynamodbav:"title,omitempty"`
	StartingBalance        int64      `dynamodbav:"starting_balance"`
	Unit                   Unit       `dynamodbav:"unit"`
	ReferenceID            string     `dynamodbav:"reference_id"`
	ReferenceType          string     `dynamodbav:"reference_type"`
	EnterpriseCustomerUUID uuid.UUID  `dynamodbav:"enterprise_customer_uuid"`
	InternalOnly           bool       `dynamodbav:"internal_only"`
	ActiveDatetime         *time.Time `dynamodbav:"active_datetime,omitempty"`
	ExpirationDatetime     *time.Time `dynamodbav:"expiration_datetime,omitempty"`
	CreatedAt              time.Time  `dynamodbav:"created_at"`
	UpdatedAt              time.Time  `dynamodbav:"updated_at"`
}

// IsActive reports whether the subsidy's validity window covers the given time.
func (s *Subsidy) IsActive(at time.Time) bool {
	if s.ActiveDatetime != nil && at.Before(*s.ActiveDatetime) {
		return false
	}
	if s.ExpirationDatetime != nil && !at.Before(*s.ExpirationDatetime) {
		return false
	}
	return true
}

// Transaction is one entry in a subsidy's append-only ledger. Quantity is
// signed and denominated in the subsidy's unit; redemption debits are
// negative. Only committed transactions count toward the balance.
type Transaction struct {
	UUID                    uuid.UUID         `dynamodbav:"uuid"`
	IdempotencyKey          string            `dynamodbav:"idempotency_key"`
	Quantity                int64             `dynamodbav:"quantity"`
	State                   TransactionState  `dynamodbav:"state"`
	SubsidyUUID             uuid.UUID         `dynamodbav:"subsidy_uuid"`
	EnterpriseCustomerUUID  uuid.UUID         `dynamodbav:"enterprise_customer_uuid"`
	LmsUserID               string            `dynamodbav:"lms_user_id"`
	ContentKey              string            `dynamodbav:"content_key"`
	SubsidyAccessPolicyUUID uuid.UUID         `dynamodbav:"subsidy_access_policy_uuid"`
	ReferenceID             string            `dynamodbav:"reference_id,omitempty"`
	ReferenceType           string            `dynamodbav:"reference_type,omitempty"`
	Metadata                map[string]string `dynamodbav:"metadata,omitempty"`
	// created_at is the sort key of two secondary indexes, so it is stored
	// as an epoch-seconds number. RFC3339Nano strings trim trailing zeros
	// in the fractional part and do not sort lexicographically.
	CreatedAt time.Time `dynamodbav:"created_at,unixtime"`
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}
