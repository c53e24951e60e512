package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

const defaultCategoryColor = "#3B82F6"

type categoryService struct {
	BaseService
	repo portsrepo.CategoryRepository
	now  func() time.Time
}

// NewCategoryService creates the category service backed by the given repository.
func NewCategoryService(repo portsrepo.CategoryRepository) portssvc.CategoryService {
	return &categoryService{repo: repo, now: time.Now}
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	now := s.now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Color:      color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.repo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "failed to save category", "category_name", name)
		return nil, err
	}

	s.LogInfo(ctx, "category created", "category_id", category.CategoryID)
	resp := dto.ToCategoryResponse(&category)
	return &resp, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID, categoryID string) (*dto.CategoryResponse, error) {
	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list categories")
		return nil, err
	}
	return dto.ToListCategoryResponse(categories), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.findOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil && *req.Color != "" {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = s.now()

	if err := s.repo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "failed to update category", "category_id", categoryID)
		return nil, err
	}

	resp := dto.ToCategoryResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := s.findOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "failed to delete category", "category_id", categoryID)
		return err
	}

	s.LogInfo(ctx, "category deleted", "category_id", categoryID)
	return nil
}

func (s *categoryService) findOwnedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return category, nil
}
