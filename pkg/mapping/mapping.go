package mapping

import (
	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Uuid:                    openapi_types.UUID(tx.UUID),
		IdempotencyKey:          tx.IdempotencyKey,
		Quantity:                tx.Quantity,
		State:                   api.TransactionState(tx.State),
		SubsidyUuid:             openapi_types.UUID(tx.SubsidyUUID),
		EnterpriseCustomerUuid:  openapi_types.UUID(tx.EnterpriseCustomerUUID),
		LmsUserId:               tx.LmsUserID,
		ContentKey:              tx.ContentKey,
		SubsidyAccessPolicyUuid: openapi_types.UUID(tx.SubsidyAccessPolicyUUID),
		Metadata:                tx.Metadata,
		CreatedAt:               tx.CreatedAt,
		UpdatedAt:               tx.UpdatedAt,
	}
	if tx.ReferenceID != "" {
		refID := tx.ReferenceID
		refType := tx.ReferenceType
		out.ReferenceId = &refID
		out.ReferenceType = &refType
	}
	return out
}

// ToDomainTransaction converts an API Transaction model back to a domain
// Transaction model. Used by the remediation lambda, which receives API
// representations off the queue.
func ToDomainTransaction(tx *api.Transaction) *models.Transaction {
	out := &models.Transaction{
		UUID:                    uuid.UUID(tx.Uuid),
		IdempotencyKey:          tx.IdempotencyKey,
		Quantity:                tx.Quantity,
		State:                   models.TransactionState(tx.State),
		SubsidyUUID:             uuid.UUID(tx.SubsidyUuid),
		EnterpriseCustomerUUID:  uuid.UUID(tx.EnterpriseCustomerUuid),
		LmsUserID:               tx.LmsUserId,
		ContentKey:              tx.ContentKey,
		SubsidyAccessPolicyUUID: uuid.UUID(tx.SubsidyAccessPolicyUuid),
		Metadata:                tx.Metadata,
		CreatedAt:               tx.CreatedAt,
		UpdatedAt:               tx.UpdatedAt,
	}
	if tx.ReferenceId != nil {
		out.ReferenceID = *tx.ReferenceId
	}
	if tx.ReferenceType != nil {
		out.ReferenceType = *tx.ReferenceType
	}
	return out
}

// ToApiSubsidy converts a domain Subsidy model to an API Subsidy model.
// The caller supplies the computed current balance since the domain model
// does not carry it.
func ToApiSubsidy(subsidy *models.Subsidy, currentBalance int64) *api.Subsidy {
	return &api.Subsidy{
		Uuid:                   openapi_types.UUID(subsidy.UUID),
		Title:                  subsidy.Title,
		StartingBalance:        subsidy.StartingBalance,
		CurrentBalance:         currentBalance,
		Unit:                   string(subsidy.Unit),
		ReferenceId:            subsidy.ReferenceID,
		ReferenceType:          subsidy.ReferenceType,
		EnterpriseCustomerUuid: openapi_types.UUID(subsidy.EnterpriseCustomerUUID),
		InternalOnly:           subsidy.InternalOnly,
		ActiveDatetime:         subsidy.ActiveDatetime,
		ExpirationDatetime:     subsidy.ExpirationDatetime,
	}
}
