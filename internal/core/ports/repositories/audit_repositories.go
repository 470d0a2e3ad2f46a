package repositories

import (
	"context"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
)

// AuditLogRepositoryFacade defines persistence operations for the audit log.
type AuditLogRepositoryFacade interface {
	// SaveAuditLog appends one audit record.
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}
