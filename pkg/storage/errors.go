package storage

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrTransactionNotPending is returned when a commit or rollback targets a
// transaction that is no longer in the created state.
var ErrTransactionNotPending = errors.New("transaction not in a pending state")
