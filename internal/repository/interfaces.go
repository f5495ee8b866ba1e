package repository

import (
	"context"
	"time"

	"github.com/triviapro/user-service/internal/domain"
)

// UserRepository defines methods for user record operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	GetByVerificationTokenHash(ctx context.Context, tokenHash string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
