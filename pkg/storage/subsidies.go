package storage

import (
	"context"

	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/google/uuid"
)

// SubsidyStore defines the interface for managing subsidies and reading
// their ledger balances.
type SubsidyStore interface {
	// GetSubsidy retrieves a subsidy by its UUID.
	GetSubsidy(ctx context.Context, subsidyUUID uuid.UUID) (*models.Subsidy, error)

	// GetOrCreateSubsidy finds the subsidy with the given reference ID, or
	// creates one from the provided defaults. Internal-only subsidies are
	// always created fresh; their reference IDs carry no meaning. The
	// boolean is true when a new subsidy was created.
	GetOrCreateSubsidy(ctx context.Context, referenceID string, defaults *models.Subsidy) (*models.Subsidy, bool, error)

	// ListSubsidies retrieves all subsidies belonging to an enterprise customer.
	ListSubsidies(ctx context.Context, enterpriseCustomerUUID uuid.UUID) ([]models.Subsidy, error)

	// CurrentBalance computes the subsidy's balance: its starting balance
	// plus the sum of quantities of committed transactions in its ledger.
	CurrentBalance(ctx context.Context, subsidy *models.Subsidy) (int64, error)
}
