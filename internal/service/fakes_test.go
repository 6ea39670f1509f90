package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/mentor-match-service/internal/domain"
	"github.com/spec-kit/mentor-match-service/internal/repository"
)

// fakeRequestRepo mirrors the Postgres repository semantics in memory,
// including the conditional-update transition and the pending-pair
// uniqueness backed by the partial index.
type fakeRequestRepo struct {
	mu       sync.Mutex
	seq      int
	requests map[string]*domain.MatchRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*domain.MatchRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *domain.MatchRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.requests {
		if existing.MentorID == request.MentorID &&
			existing.MenteeID == request.MenteeID &&
			existing.Status == domain.RequestStatusPending {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	f.seq++
	request.ID = fmt.Sprintf("req-%d", f.seq)
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	request.UpdatedAt = request.CreatedAt
	stored := *request
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*domain.MatchRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) ListByMentor(_ context.Context, mentorID string) ([]domain.MatchRequest, error) {
	return f.listWhere(func(r *domain.MatchRequest) bool { return r.MentorID == mentorID }), nil
}

func (f *fakeRequestRepo) ListByMentee(_ context.Context, menteeID string) ([]domain.MatchRequest, error) {
	return f.listWhere(func(r *domain.MatchRequest) bool { return r.MenteeID == menteeID }), nil
}

func (f *fakeRequestRepo) listWhere(match func(*domain.MatchRequest) bool) []domain.MatchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.MatchRequest
	for _, request := range f.requests {
		if match(request) {
			result = append(result, *request)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func (f *fakeRequestRepo) HasPendingForPair(_ context.Context, mentorID, menteeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, request := range f.requests {
		if request.MentorID == mentorID && request.MenteeID == menteeID && request.Status == domain.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) TransitionStatus(_ context.Context, id string, from, to domain.RequestStatus) (*domain.MatchRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.Status != from {
		return nil, pgx.ErrNoRows
	}
	request.Status = to
	request.UpdatedAt = time.Now()
	copied := *request
	return &copied, nil
}

// seed inserts a request directly, bypassing Create-side checks.
func (f *fakeRequestRepo) seed(request domain.MatchRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := request
	f.requests[request.ID] = &stored
}

// fakeProfileRepo keeps mentor and mentee profiles in memory. SearchMentors
// implements the same filter and ordering semantics as the SQL query.
type fakeProfileRepo struct {
	mu      sync.Mutex
	mentors map[string]*domain.MentorProfile
	mentees map[string]*domain.MenteeProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		mentors: make(map[string]*domain.MentorProfile),
		mentees: make(map[string]*domain.MenteeProfile),
	}
}

func (f *fakeProfileRepo) GetMentor(_ context.Context, userID string) (*domain.MentorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mentor, ok := f.mentors[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *mentor
	return &copied, nil
}

func (f *fakeProfileRepo) UpsertMentor(_ context.Context, userID string, skills []string, experienceYears int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	mentor, ok := f.mentors[userID]
	if !ok {
		mentor = &domain.MentorProfile{UserID: userID}
		f.mentors[userID] = mentor
	}
	mentor.Skills = skills
	mentor.ExperienceYears = experienceYears
	return nil
}

func (f *fakeProfileRepo) GetMentee(_ context.Context, userID string) (*domain.MenteeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mentee, ok := f.mentees[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *mentee
	return &copied, nil
}

func (f *fakeProfileRepo) UpsertMentee(_ context.Context, profile *domain.MenteeProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *profile
	f.mentees[profile.UserID] = &stored
	return nil
}

func (f *fakeProfileRepo) SearchMentors(_ context.Context, filter repository.MentorSearchFilter) ([]domain.MentorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.MentorProfile
	for _, mentor := range f.mentors {
		if filter.Skill != "" && !hasSkillSubstring(mentor.Skills, filter.Skill) {
			continue
		}
		result = append(result, *mentor)
	}

	sort.Slice(result, func(i, j int) bool {
		switch filter.OrderBy {
		case repository.MentorOrderByName:
			if result[i].Name != result[j].Name {
				return result[i].Name < result[j].Name
			}
		case repository.MentorOrderBySkill:
			si, sj := primarySkill(result[i].Skills), primarySkill(result[j].Skills)
			if si != sj {
				if si == "" {
					return false
				}
				if sj == "" {
					return true
				}
				return si < sj
			}
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

func (f *fakeProfileRepo) addMentor(mentor domain.MentorProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := mentor
	f.mentors[mentor.UserID] = &stored
}

func hasSkillSubstring(skills []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, skill := range skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func primarySkill(skills []string) string {
	if len(skills) == 0 {
		return ""
	}
	return skills[0]
}

// fakeHistoryRepo records transition entries in order.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.RequestHistory
}

func (f *fakeHistoryRepo) Create(_ context.Context, entry *domain.RequestHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = fmt.Sprintf("hist-%d", len(f.entries)+1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) ListByRequest(_ context.Context, requestID string) ([]domain.RequestHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RequestHistory
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// fakeUserRepo backs auth and profile service tests.
type fakeUserRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	stored.UpdatedAt = time.Now()
	f.byID[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}
