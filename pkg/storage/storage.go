package storage

//go:generate mockery --name Storage --output ./mocks --outpkg mocks

// Storage defines the root interface for the entire data layer.
// Components should depend on the more granular interfaces (ApiStore,
// TransactionStore, SubsidyStore) instead of this one.
type Storage interface {
	ApiStore
}
