package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/dto"
	"github.com/triviapro/user-service/internal/repository"
	"github.com/triviapro/user-service/internal/utils"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

// authService implements AuthService
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	verifier   IdentityVerifier
	mailer     Sender
	logger     *zap.Logger
	bcryptCost int
	clientURL  string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	verifier IdentityVerifier,
	mailer Sender,
	logger *zap.Logger,
	bcryptCost int,
	clientURL string,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		verifier:   verifier,
		mailer:     mailer,
		logger:     logger,
		bcryptCost: bcryptCost,
		clientURL:  clientURL,
	}
}

// Register creates a password-based account and triggers a verification email
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("invalid email format: %w", ErrValidation)
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long: %w", ErrValidation)
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = domain.DefaultDisplayName
	}

	user := &domain.User{
		Email:        email,
		AuthProvider: domain.ProviderEmail,
		DisplayName:  displayName,
	}
	if err := s.setPassword(user, req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.SendVerificationEmail(ctx, user.Email); err != nil {
		s.logger.Warn("Failed to send verification email after registration",
			zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// Login authenticates a password-based account and issues an access token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.ValidateCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ValidateCredentials is the read-only check behind the login path. A
// mismatch returns nil without an error.
func (s *authService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.AuthProvider != domain.ProviderEmail {
		return nil, nil
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}

	return user, nil
}

// FirebaseAuth verifies an external ID token and resolves it to an account:
// match by external reference, else link by email, else create.
func (s *authService) FirebaseAuth(ctx context.Context, idToken string) (*AuthResult, error) {
	identity, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Info("Firebase token verification failed", zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	user, err := s.resolveExternalIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *authService) resolveExternalIdentity(ctx context.Context, identity *domain.ExternalIdentity) (*domain.User, error) {
	user, err := s.userRepo.GetByFirebaseUID(ctx, identity.UID)
	if err == nil {
		// Re-authentication; bump the update timestamp.
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up external identity: %w", err)
	}

	user, err = s.userRepo.GetByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		// Link the external identity to the existing account.
		user.FirebaseUID = identity.UID
		user.AuthProvider = domain.ProviderFirebase
		err = s.userRepo.Update(ctx, user)
	case errors.Is(err, repository.ErrNotFound):
		displayName := identity.DisplayName
		if displayName == "" {
			displayName = domain.DefaultDisplayName
		}
		user = &domain.User{
			Email:           identity.Email,
			FirebaseUID:     identity.UID,
			AuthProvider:    domain.ProviderFirebase,
			DisplayName:     displayName,
			IsEmailVerified: identity.EmailVerified,
		}
		err = s.userRepo.Create(ctx, user)
	default:
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if err != nil {
		// A concurrent sign-in linked the identity first; the unique index
		// turned the race into a signal to retry the lookup.
		if errors.Is(err, repository.ErrDuplicateFirebaseUID) || errors.Is(err, repository.ErrDuplicateEmail) {
			return s.userRepo.GetByFirebaseUID(ctx, identity.UID)
		}
		return nil, fmt.Errorf("failed to persist federated account: %w", err)
	}

	return user, nil
}

// ForgotPassword issues a reset token. Unknown emails no-op so the endpoint
// cannot be used to enumerate accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.AuthProvider != domain.ProviderEmail {
		return fmt.Errorf("please use %s authentication: %w", user.AuthProvider, ErrWrongProvider)
	}

	rawToken, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordTokenHash = utils.HashToken(rawToken)
	user.ResetPasswordExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.clientURL, rawToken)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		s.logger.Warn("Failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return fmt.Errorf("password must be at least 8 characters long: %w", ErrValidation)
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, utils.HashToken(rawToken), time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if err := s.setPassword(user, newPassword); err != nil {
		return err
	}
	user.ResetPasswordTokenHash = ""
	user.ResetPasswordExpires = nil

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// SendVerificationEmail issues a verification token. Absent or already
// verified users no-op.
func (s *authService) SendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsEmailVerified {
		return nil
	}

	rawToken, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	user.VerificationTokenHash = utils.HashToken(rawToken)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.clientURL, rawToken)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email, verifyURL); err != nil {
		s.logger.Warn("Failed to send verification email",
			zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

// VerifyEmail consumes a verification token, flips the verified flag and
// sends the welcome email.
func (s *authService) VerifyEmail(ctx context.Context, rawToken string) error {
	user, err := s.userRepo.GetByVerificationTokenHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidVerificationToken
		}
		return fmt.Errorf("failed to look up verification token: %w", err)
	}

	user.IsEmailVerified = true
	user.VerificationTokenHash = ""

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := s.mailer.SendWelcome(ctx, user.Email, user.DisplayName); err != nil {
		s.logger.Warn("Failed to send welcome email",
			zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

// ValidateIdentity resolves a token's subject claim back to a live record.
// An unknown id returns nil without an error.
func (s *authService) ValidateIdentity(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ValidateToken verifies an access token and returns its claims
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// setPassword hashes the plaintext onto the user. An already-hashed value,
// detected by the bcrypt format marker, is never re-hashed.
func (s *authService) setPassword(user *domain.User, password string) error {
	if utils.IsBcryptHash(password) {
		user.PasswordHash = password
		return nil
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return nil
}

func (s *authService) issueToken(user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResult{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   s.jwtManager.GetExpiry(),
	}, nil
}
