package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// UserService defines registration, authentication and profile retrieval.
type UserService interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)

	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// GetUserByID retrieves a user's profile.
	GetUserByID(ctx context.Context, userID string) (*dto.UserResponse, error)
}
