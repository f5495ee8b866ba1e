package domain

import "time"

// TokenClaims represents the claims carried by an access token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// IsExpired checks if the token is expired.
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}

// ExternalIdentity is the profile vouched for by the identity provider.
type ExternalIdentity struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
}
