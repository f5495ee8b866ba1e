package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/dto"
	"github.com/triviapro/user-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuthService satisfies service.AuthService with injectable results.
type stubAuthService struct {
	user   *domain.User
	result *service.AuthResult
	claims *domain.TokenClaims
	err    error

	lastEmail string
	lastToken string
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*service.AuthResult, error) {
	return s.result, s.err
}

func (s *stubAuthService) FirebaseAuth(ctx context.Context, idToken string) (*service.AuthResult, error) {
	s.lastToken = idToken
	return s.result, s.err
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	s.lastEmail = email
	return s.err
}

func (s *stubAuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	s.lastToken = rawToken
	return s.err
}

func (s *stubAuthService) SendVerificationEmail(ctx context.Context, email string) error {
	s.lastEmail = email
	return s.err
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, rawToken string) error {
	s.lastToken = rawToken
	return s.err
}

func (s *stubAuthService) ValidateCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) ValidateIdentity(ctx context.Context, userID string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	return s.claims, s.err
}

// stubUserService satisfies service.UserService with injectable results.
type stubUserService struct {
	user  *domain.User
	users []*domain.User
	err   error

	lastID string
}

func (s *stubUserService) ListAll(ctx context.Context) ([]*domain.User, error) {
	return s.users, s.err
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.lastID = id
	return s.user, s.err
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error) {
	s.lastID = id
	return s.user, s.err
}

func (s *stubUserService) UpdateStats(ctx context.Context, id string, patch domain.StatsPatch) (*domain.User, error) {
	s.lastID = id
	return s.user, s.err
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	s.lastID = id
	return s.err
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
