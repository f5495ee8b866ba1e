package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/triviapro/user-service/internal/domain"
	"github.com/triviapro/user-service/internal/dto"
	"github.com/triviapro/user-service/internal/service"
)

func newAuthRouter(svc service.AuthService) *gin.Engine {
	h := NewAuthHandler(svc)
	r := gin.New()
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/firebase", h.FirebaseAuth)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)
	}
	return r
}

func testUser() *domain.User {
	return &domain.User{
		ID:           "user-1",
		Email:        "player@example.com",
		AuthProvider: domain.ProviderEmail,
		DisplayName:  "Trivia Master",
	}
}

func TestRegisterReturnsCreated(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "player@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.RegisterResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Registration successful. Please check your email for verification.", resp.Message)
	assert.Equal(t, "player@example.com", resp.User.Email)
}

func TestRegisterDuplicateEmailReturnsConflict(t *testing.T) {
	svc := &stubAuthService{err: service.ErrEmailTaken}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:    "player@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Conflict", resp.Error)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	svc := &stubAuthService{user: testUser()}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Validation failed", resp.Error)
}

func TestLoginReturnsToken(t *testing.T) {
	svc := &stubAuthService{result: &service.AuthResult{
		User:        testUser(),
		AccessToken: "token-abc",
		ExpiresIn:   604800,
	}}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "player@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.AuthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "token-abc", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 604800, resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)
}

func TestLoginBadCredentialsReturnsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "player@example.com",
		Password: "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFirebaseAuthReturnsToken(t *testing.T) {
	svc := &stubAuthService{result: &service.AuthResult{
		User:        testUser(),
		AccessToken: "token-fed",
		ExpiresIn:   604800,
	}}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/firebase", dto.FirebaseAuthRequest{
		IDToken: "firebase-id-token",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "firebase-id-token", svc.lastToken)
}

func TestFirebaseAuthInvalidTokenReturnsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidCredentials}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/firebase", dto.FirebaseAuthRequest{
		IDToken: "garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordAlwaysSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/forgot-password", dto.ForgotPasswordRequest{
		Email: "ghost@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ghost@example.com", svc.lastEmail)

	var resp dto.SuccessResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "If an account exists, a password reset email has been sent.", resp.Message)
}

func TestResetPasswordInvalidTokenReturnsBadRequest(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidResetToken}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password", dto.ResetPasswordRequest{
		Token:    "expired-token",
		Password: "newpassword1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordSuccess(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password", dto.ResetPasswordRequest{
		Token:    "valid-token",
		Password: "newpassword1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "valid-token", svc.lastToken)
}

func TestVerifyEmailSuccess(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/verify-email", dto.VerifyEmailRequest{
		Token: "verification-token",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Email verified successfully.", resp.Message)
}

func TestVerifyEmailInvalidTokenReturnsBadRequest(t *testing.T) {
	svc := &stubAuthService{err: service.ErrInvalidVerificationToken}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/verify-email", dto.VerifyEmailRequest{
		Token: "bad-token",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerification(t *testing.T) {
	svc := &stubAuthService{}
	router := newAuthRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/api/v1/auth/resend-verification", dto.ResendVerificationRequest{
		Email: "player@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "player@example.com", svc.lastEmail)
}
