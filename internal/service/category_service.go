package service

import (
	"context"
	"fmt"
	"time"

	"freshfood/internal/domain"
	"freshfood/internal/repository"

	"github.com/google/uuid"
)

// CreateCategoryInput carries the fields an admin supplies for a new category.
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CategoryService defines the category business logic
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
