package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository with the same uniqueness
// behavior as the Mongo-backed one.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate: %w", repository.ErrDuplicateEmail)
		}
		if user.FirebaseUID != "" && u.FirebaseUID == user.FirebaseUID {
			return fmt.Errorf("duplicate: %w", repository.ErrDuplicateFirebaseUID)
		}
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.FirebaseUID != "" && u.FirebaseUID == uid })
}

func (r *fakeUserRepo) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.ResetPasswordTokenHash == tokenHash &&
			u.ResetPasswordExpires != nil &&
			u.ResetPasswordExpires.After(now)
	})
}

func (r *fakeUserRepo) GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.VerificationTokenHash != "" && u.VerificationTokenHash == tokenHash
	})
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with id %s: %w", user.ID, repository.ErrNotFound)
	}

	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return fmt.Errorf("duplicate: %w", repository.ErrDuplicateEmail)
		}
		if user.FirebaseUID != "" && u.FirebaseUID == user.FirebaseUID {
			return fmt.Errorf("duplicate: %w", repository.ErrDuplicateFirebaseUID)
		}
	}

	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
	}

	if patch.Level != nil {
		u.Stats.Level = *patch.Level
	}
	if patch.XP != nil {
		u.Stats.XP = *patch.XP
	}
	if patch.GamesPlayed != nil {
		u.Stats.GamesPlayed = *patch.GamesPlayed
	}
	if patch.CurrentStreak != nil {
		u.Stats.CurrentStreak = *patch.CurrentStreak
	}
	if patch.WinRate != nil {
		u.Stats.WinRate = *patch.WinRate
	}
	if patch.TotalPoints != nil {
		u.Stats.TotalPoints = *patch.TotalPoints
	}
	u.UpdatedAt = time.Now()

	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("no match: %w", repository.ErrNotFound)
}

// raw returns the stored record without cloning, for white-box assertions.
func (r *fakeUserRepo) raw(id string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id]
}

type sentMail struct {
	kind string
	to   string
	url  string
	name string
}

// fakeMailer records outbound mail instead of sending it.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerificationEmail(ctx context.Context, to, url string) error {
	return m.record(sentMail{kind: "verification", to: to, url: url})
}

func (m *fakeMailer) SendPasswordReset(ctx context.Context, to, url string) error {
	return m.record(sentMail{kind: "password-reset", to: to, url: url})
}

func (m *fakeMailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.record(sentMail{kind: "welcome", to: to, name: name})
}

func (m *fakeMailer) record(mail sentMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *fakeMailer) all() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

func (m *fakeMailer) last() *sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	mail := m.sent[len(m.sent)-1]
	return &mail
}

// fakeVerifier returns a canned identity or error.
type fakeVerifier struct {
	identity *domain.ExternalIdentity
	err      error
}

func (v *fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}
