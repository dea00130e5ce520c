package domain

import "time"

const AuditPageForbidden = "page_forbidden"

// AuditEvent records a rejected ownership check.
type AuditEvent struct {
	ID         string        `json:"id" bson:"_id"`
	Kind       string        `json:"kind" bson:"kind"`
	ActorID    ID            `json:"actor_id" bson:"actor_id"`
	OwnerID    ID            `json:"owner_id" bson:"owner_id"`
	PageID     ID            `json:"page_id" bson:"page_id"`
	Operation  PageOperation `json:"operation" bson:"operation"`
	RequestID  string        `json:"request_id,omitempty" bson:"request_id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at" bson:"occurred_at"`
}
