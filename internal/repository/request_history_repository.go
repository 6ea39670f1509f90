package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentor-match-service/internal/domain"
)

// RequestHistoryRepository stores the immutable transition audit trail.
type RequestHistoryRepository interface {
	Create(ctx context.Context, entry *domain.RequestHistory) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.RequestHistory, error)
}

type requestHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewRequestHistoryRepository constructs repository.
func NewRequestHistoryRepository(pool *pgxpool.Pool) RequestHistoryRepository {
	return &requestHistoryRepository{pool: pool}
}

func (r *requestHistoryRepository) Create(ctx context.Context, entry *domain.RequestHistory) error {
	const query = `
        INSERT INTO match_request_history (request_id, actor_id, actor_role, old_status, new_status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.RequestID,
		entry.ActorID,
		entry.ActorRole,
		entry.OldStatus,
		entry.NewStatus,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *requestHistoryRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.RequestHistory, error) {
	const query = `
        SELECT id, request_id, actor_id, actor_role, old_status, new_status, created_at
        FROM match_request_history WHERE request_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestHistory
	for rows.Next() {
		var entry domain.RequestHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.OldStatus,
			&entry.NewStatus,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
