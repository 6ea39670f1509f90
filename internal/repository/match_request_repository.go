package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentor-match-service/internal/domain"
)

// MatchRequestRepository encapsulates match request persistence.
//
// TransitionStatus is the compare-and-swap primitive of the lifecycle: a
// single conditional UPDATE guarded on the expected current status. When the
// guard does not hold (row missing or already transitioned) it returns
// pgx.ErrNoRows and writes nothing.
type MatchRequestRepository interface {
	Create(ctx context.Context, request *domain.MatchRequest) error
	GetByID(ctx context.Context, id string) (*domain.MatchRequest, error)
	ListByMentor(ctx context.Context, mentorID string) ([]domain.MatchRequest, error)
	ListByMentee(ctx context.Context, menteeID string) ([]domain.MatchRequest, error)
	HasPendingForPair(ctx context.Context, mentorID, menteeID string) (bool, error)
	TransitionStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.MatchRequest, error)
}

type matchRequestRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRequestRepository instantiates repository.
func NewMatchRequestRepository(pool *pgxpool.Pool) MatchRequestRepository {
	return &matchRequestRepository{pool: pool}
}

const requestColumns = `id, mentor_id, mentee_id, message, status, created_at, updated_at`

func (r *matchRequestRepository) Create(ctx context.Context, request *domain.MatchRequest) error {
	const query = `
        INSERT INTO match_requests (mentor_id, mentee_id, message, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.MentorID,
		request.MenteeID,
		request.Message,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

func (r *matchRequestRepository) GetByID(ctx context.Context, id string) (*domain.MatchRequest, error) {
	const query = `SELECT ` + requestColumns + ` FROM match_requests WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *matchRequestRepository) ListByMentor(ctx context.Context, mentorID string) ([]domain.MatchRequest, error) {
	const query = `SELECT ` + requestColumns + `
        FROM match_requests WHERE mentor_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, mentorID)
}

func (r *matchRequestRepository) ListByMentee(ctx context.Context, menteeID string) ([]domain.MatchRequest, error) {
	const query = `SELECT ` + requestColumns + `
        FROM match_requests WHERE mentee_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, menteeID)
}

func (r *matchRequestRepository) HasPendingForPair(ctx context.Context, mentorID, menteeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM match_requests
            WHERE mentor_id=$1 AND mentee_id=$2 AND status='pending'
        )`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, mentorID, menteeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *matchRequestRepository) TransitionStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.MatchRequest, error) {
	const query = `
        UPDATE match_requests SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status=$3
        RETURNING ` + requestColumns
	var request domain.MatchRequest
	if err := r.pool.QueryRow(ctx, query, to, id, from).Scan(
		&request.ID,
		&request.MentorID,
		&request.MenteeID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *matchRequestRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.MatchRequest, error) {
	var request domain.MatchRequest
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&request.ID,
		&request.MentorID,
		&request.MenteeID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *matchRequestRepository) list(ctx context.Context, query string, arg any) ([]domain.MatchRequest, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MatchRequest
	for rows.Next() {
		var request domain.MatchRequest
		if err := rows.Scan(
			&request.ID,
			&request.MentorID,
			&request.MenteeID,
			&request.Message,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, used to detect a racing duplicate pending request.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
