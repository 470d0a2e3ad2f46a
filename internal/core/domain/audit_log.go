package domain

import "time"

// AuditAction enumerates the mutations recorded in the audit log.
type AuditAction string

const (
	AuditExpenseCreated     AuditAction = "expense_created"
	AuditSettlementExecuted AuditAction = "settlement_executed"
	AuditTransferExecuted   AuditAction = "transfer_executed"
)

// AuditLog is an append-only record of a mutation, keyed back to the HTTP
// request that caused it.
type AuditLog struct {
	LogID       int64       `json:"logID"`
	ActorUserID int64       `json:"actorUserID"`
	Action      AuditAction `json:"action"`
	EntityType  string      `json:"entityType"`
	EntityID    int64       `json:"entityID"`
	RequestID   string      `json:"requestID"`
	CreatedAt   time.Time   `json:"createdAt"`
}
