package storage

// ApiStore defines the complete set of operations needed by the API service.
// It composes the granular interfaces to give the HTTP layer one clear
// boundary for data access.
type ApiStore interface {
	TransactionStore
	SubsidyStore
}
