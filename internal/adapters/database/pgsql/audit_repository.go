package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prosperahq/prospera_wallet_app/internal/core/domain"
	portsrepo "github.com/prosperahq/prospera_wallet_app/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAuditRepository creates a new repository for the append-only audit log.
func NewPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	query := `
		INSERT INTO audit_logs (actor_user_id, action, entity_type, entity_id, request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		log.ActorUserID,
		log.Action,
		log.EntityType,
		log.EntityID,
		log.RequestID,
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}
