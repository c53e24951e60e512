package services

import (
	"context"

	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

// CategoryService defines the business operations for expense categories.
type CategoryService interface {
	// CreateCategory creates a new category for the user.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)

	// GetCategoryByID retrieves one of the user's categories.
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*dto.CategoryResponse, error)

	// ListCategories retrieves all of the user's categories.
	ListCategories(ctx context.Context, userID string) ([]dto.CategoryResponse, error)

	// UpdateCategory applies the provided fields to a category.
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)

	// DeleteCategory removes a category. Expenses keep their category
	// reference; deletion is refused while any expense uses the category.
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}
