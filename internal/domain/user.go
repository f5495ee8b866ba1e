package domain

import (
	"time"
)

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderEmail    AuthProvider = "email"
	ProviderGoogle   AuthProvider = "google"
	ProviderFirebase AuthProvider = "firebase"
)

// DefaultDisplayName is assigned when registration omits a display name.
const DefaultDisplayName = "Trivia Master"

// User is the sole persisted entity, stored in the users collection.
// Secret material (password hash, token hashes) never appears in JSON.
type User struct {
	ID           string       `json:"id" bson:"_id"`
	Email        string       `json:"email" bson:"email"`
	PasswordHash string       `json:"-" bson:"password_hash,omitempty"`
	FirebaseUID  string       `json:"-" bson:"firebase_uid,omitempty"`
	AuthProvider AuthProvider `json:"auth_provider" bson:"auth_provider"`

	IsEmailVerified        bool       `json:"is_email_verified" bson:"is_email_verified"`
	ResetPasswordTokenHash string     `json:"-" bson:"reset_password_token_hash,omitempty"`
	ResetPasswordExpires   *time.Time `json:"-" bson:"reset_password_expires,omitempty"`
	VerificationTokenHash  string     `json:"-" bson:"verification_token_hash,omitempty"`

	DisplayName string `json:"display_name" bson:"display_name"`
	Stats       Stats  `json:"stats" bson:"stats"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Stats holds gameplay statistics, each independently settable.
type Stats struct {
	Level         int     `json:"level" bson:"level"`
	XP            int     `json:"xp" bson:"xp"`
	GamesPlayed   int     `json:"games_played" bson:"games_played"`
	CurrentStreak int     `json:"current_streak" bson:"current_streak"`
	WinRate       float64 `json:"win_rate" bson:"win_rate"`
	TotalPoints   int     `json:"total_points" bson:"total_points"`
}

// StatsPatch carries partial stat updates; nil fields are left untouched.
type StatsPatch struct {
	Level         *int     `json:"level,omitempty"`
	XP            *int     `json:"xp,omitempty"`
	GamesPlayed   *int     `json:"games_played,omitempty"`
	CurrentStreak *int     `json:"current_streak,omitempty"`
	WinRate       *float64 `json:"win_rate,omitempty"`
	TotalPoints   *int     `json:"total_points,omitempty"`
}

// ProfilePatch carries partial profile updates.
type ProfilePatch struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}
