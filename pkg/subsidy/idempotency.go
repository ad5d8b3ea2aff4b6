package subsidy

import (
	"fmt"

	"github.com/google/uuid"
)

// idempotencyNamespace is the UUIDv5 namespace for derived transaction
// idempotency keys. Fixed forever: changing it would re-key every
// in-flight redemption.
var idempotencyNamespace = uuid.MustParse("8c0a2e54-5b7b-4bdd-9f66-8c712d6f4f4b")

// TransactionIdempotencyKey deterministically derives the idempotency key
// for a redemption from the ledger identity, the quantity, and the
// (learner, content, policy) triple. Concurrent or retried calls with
// identical inputs derive identical keys and therefore collide on the same
// ledger row at the storage layer.
func TransactionIdempotencyKey(subsidyUUID uuid.UUID, quantity int64, lmsUserID, contentKey string, policyUUID uuid.UUID) string {
	payload := fmt.Sprintf("%s:%s:%s", lmsUserID, contentKey, policyUUID)
	digest := uuid.NewSHA1(idempotencyNamespace, []byte(payload))
	return fmt.Sprintf("ledger-%s-%d-%s", subsidyUUID, quantity, digest)
}
