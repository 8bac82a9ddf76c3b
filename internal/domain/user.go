package domain

import (
	"context"
	"time"
)

// User roles. A user either browses seeker videos as an employer or presents
// themselves as a job seeker. The role is switchable from the profile page,
// so it lives on the user record rather than being baked into the token.
const (
	RoleEmployer = "employer"
	RoleSeeker   = "seeker"
	RoleAdmin    = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type AuthUsecase interface {
	// EnsureUserExists upserts the local user record from verified token
	// claims. Called on first login and after profile edits on the auth side.
	EnsureUserExists(ctx context.Context, user *User) error
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	// SwitchRole flips the caller between employer and seeker.
	SwitchRole(ctx context.Context, userID string, role string) (*User, error)
}
