package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRole is the application role carried by an authenticated user.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleUser   UserRole = "user"
	RolePublic UserRole = "public"
)

// ParseUserRole normalizes a role string to a known UserRole.
// Unknown values fall back to RolePublic.
func ParseUserRole(s string) UserRole {
	switch UserRole(s) {
	case RoleAdmin, RoleUser, RolePublic:
		return UserRole(s)
	default:
		return RolePublic
	}
}

// User represents a registered user
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(name, email, passwordHash string, role UserRole, createdAt time.Time) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    createdAt,
	}
}

// PasswordHasher handles password hashing and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, role UserRole, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated identity.
type TokenVerifier interface {
	Verify(token string) (userID int64, role UserRole, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// AuthService defines signup and login business logic.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password, role string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	GetUser(ctx context.Context, userID int64) (*User, error)
}
