package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/mentor-match-service/internal/domain"
)

// MentorOrder selects the directory sort key.
type MentorOrder string

const (
	MentorOrderDefault MentorOrder = ""
	MentorOrderByName  MentorOrder = "name"
	MentorOrderBySkill MentorOrder = "skill"
)

// MentorSearchFilter captures directory search parameters.
type MentorSearchFilter struct {
	Skill   string
	OrderBy MentorOrder
}

// ProfileRepository manages role-specific profile rows and the mentor directory.
type ProfileRepository interface {
	GetMentor(ctx context.Context, userID string) (*domain.MentorProfile, error)
	UpsertMentor(ctx context.Context, userID string, skills []string, experienceYears int) error
	GetMentee(ctx context.Context, userID string) (*domain.MenteeProfile, error)
	UpsertMentee(ctx context.Context, profile *domain.MenteeProfile) error
	SearchMentors(ctx context.Context, filter MentorSearchFilter) ([]domain.MentorProfile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) GetMentor(ctx context.Context, userID string) (*domain.MentorProfile, error) {
	const query = `
        SELECT u.id, u.name, u.email, u.bio, u.image_ref, m.skills, m.experience_years, m.rating
        FROM users u
        JOIN mentor_profiles m ON m.user_id = u.id
        WHERE u.id=$1 AND u.role='mentor'`

	var profile domain.MentorProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.Bio,
		&profile.ImageRef,
		&profile.Skills,
		&profile.ExperienceYears,
		&profile.Rating,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpsertMentor(ctx context.Context, userID string, skills []string, experienceYears int) error {
	const query = `
        INSERT INTO mentor_profiles (user_id, skills, experience_years)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET skills=$2, experience_years=$3`
	_, err := r.pool.Exec(ctx, query, userID, skills, experienceYears)
	return err
}

func (r *profileRepository) GetMentee(ctx context.Context, userID string) (*domain.MenteeProfile, error) {
	const query = `
        SELECT user_id, interests, goals FROM mentee_profiles WHERE user_id=$1`

	var profile domain.MenteeProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Interests,
		&profile.Goals,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpsertMentee(ctx context.Context, profile *domain.MenteeProfile) error {
	const query = `
        INSERT INTO mentee_profiles (user_id, interests, goals)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET interests=$2, goals=$3`
	_, err := r.pool.Exec(ctx, query, profile.UserID, profile.Interests, profile.Goals)
	return err
}

func (r *profileRepository) SearchMentors(ctx context.Context, filter MentorSearchFilter) ([]domain.MentorProfile, error) {
	base := `SELECT u.id, u.name, u.email, u.bio, u.image_ref, m.skills, m.experience_years, m.rating
             FROM users u
             JOIN mentor_profiles m ON m.user_id = u.id
             WHERE u.role='mentor'`
	args := []any{}

	if strings.TrimSpace(filter.Skill) != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Skill)+"%")
		base += ` AND EXISTS (SELECT 1 FROM unnest(m.skills) AS skill WHERE skill ILIKE $1)`
	}

	// Ties always break by ascending id so repeated searches are deterministic.
	switch filter.OrderBy {
	case MentorOrderByName:
		base += ` ORDER BY u.name ASC, u.id ASC`
	case MentorOrderBySkill:
		base += ` ORDER BY m.skills[1] ASC NULLS LAST, u.id ASC`
	default:
		base += ` ORDER BY u.id ASC`
	}

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMentors(rows)
}

func scanMentors(rows pgx.Rows) ([]domain.MentorProfile, error) {
	var result []domain.MentorProfile
	for rows.Next() {
		var profile domain.MentorProfile
		if err := rows.Scan(
			&profile.UserID,
			&profile.Name,
			&profile.Email,
			&profile.Bio,
			&profile.ImageRef,
			&profile.Skills,
			&profile.ExperienceYears,
			&profile.Rating,
		); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
