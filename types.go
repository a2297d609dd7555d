package goIdentity

import (
	"context"
	"time"
)

// User is the persisted identity record managed through a [Directory].
// Email and username are each globally unique; PasswordHash holds the
// opaque digest produced by the password sub-package and is never exposed
// through [Profile].
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	AvatarURL    string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the outward-facing projection of a [User]. It is a distinct
// type rather than a field-filtering convention so the password digest is
// structurally absent from anything serialized to callers.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the outward projection of u.
func (u *User) Profile() *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TokenPair is returned by [Engine.Register], [Engine.Login], and
// [Engine.Refresh]. TokenType is always "bearer". It is transient and
// never persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterRequest is the input to [Engine.Register].
type RegisterRequest struct {
	Email    string
	Username string
	Password string
	FullName string
}

// Directory is the interface callers must implement to integrate goIdentity
// with their user database. Lookups return [ErrUserNotFound] when no record
// matches. Insert must enforce email and username uniqueness atomically
// (unique index or equivalent) and return [ErrDuplicateCredential] on
// conflict; the engine's pre-insert checks are an optimization, not the
// source of truth.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Insert(ctx context.Context, user *User) (*User, error)
}
