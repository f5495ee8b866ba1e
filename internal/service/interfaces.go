package service

import (
	"context"

	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/dto"
)

// AuthResult pairs a user record with a freshly issued access token
type AuthResult struct {
	User        *domain.User
	AccessToken string
	ExpiresIn   int
}

// AuthService defines the account-lifecycle operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error)
	FirebaseAuth(ctx context.Context, idToken string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
	SendVerificationEmail(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, rawToken string) error
	ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error)
	ValidateIdentity(ctx context.Context, userID string) (*domain.User, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines profile and stat operations over user records
type UserService interface {
	ListAll(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)
	UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// IdentityVerifier verifies externally-issued ID tokens
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*domain.ExternalIdentity, error)
}

// Sender dispatches templated transactional email
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, url string) error
	SendPasswordReset(ctx context.Context, to, url string) error
	SendWelcome(ctx context.Context, to, name string) error
}
