package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/policy"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const categoryNameTaken = "Category name already exists"

// CategoryRenameResult pairs the renamed category with an optional advisory
// about posts already linked to it.
type CategoryRenameResult struct {
	Category domain.Category
	Warning  *string
}

// CategoryService guards the taxonomy: names stay unique and a category in
// use cannot be removed.
type CategoryService struct {
	categories repository.CategoryRepository
	posts      repository.PostRepository
	tx         repository.Transactor
	events     publisher
}

// CategoryDependencies bundles repositories for category service.
type CategoryDependencies struct {
	CategoryRepo repository.CategoryRepository
	PostRepo     repository.PostRepository
	Transactor   repository.Transactor
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewCategoryService constructs the service.
func NewCategoryService(deps CategoryDependencies) *CategoryService {
	return &CategoryService{
		categories: deps.CategoryRepo,
		posts:      deps.PostRepo,
		tx:         deps.Transactor,
		events:     newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// List returns every category ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// Get returns one category.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, "Category")
	}
	return category, nil
}

// Create adds a category with a unique name.
func (s *CategoryService) Create(ctx context.Context, actor *domain.User, name string) (*domain.Category, error) {
	if !policy.CanManageCategories(actor) {
		return nil, apperrors.NewForbidden("Admin privileges required")
	}
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict(categoryNameTaken, nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(categoryNameTaken, nil)
		}
		return nil, apperrors.MapError(err)
	}
	s.events.publish(ctx, events.New(events.EventCategoryCreated, category.ID, actor, events.CategoryPayload{Name: category.Name}))
	return category, nil
}

// Rename changes a category name. Linked posts never block a rename; they
// only produce a warning.
func (s *CategoryService) Rename(ctx context.Context, actor *domain.User, id, name string) (*CategoryRenameResult, error) {
	if !policy.CanManageCategories(actor) {
		return nil, apperrors.NewForbidden("Admin privileges required")
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, "Category")
	}
	if existing, err := s.categories.GetByName(ctx, name); err == nil && existing.ID != category.ID {
		return nil, apperrors.NewConflict(categoryNameTaken, nil)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	count, err := s.posts.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	oldName := category.Name
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict(categoryNameTaken, nil)
		}
		return nil, repository.MapError(err, "Category")
	}

	result := &CategoryRenameResult{Category: *category}
	if count > 0 {
		warning := fmt.Sprintf("This category has been renamed. %d post(s) are associated with it.", count)
		result.Warning = &warning
	}
	s.events.publish(ctx, events.New(events.EventCategoryRenamed, category.ID, actor, events.CategoryPayload{
		Name:      category.Name,
		OldName:   oldName,
		PostCount: count,
	}))
	return result, nil
}

// Delete removes a category that no post references.
func (s *CategoryService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !policy.CanManageCategories(actor) {
		return apperrors.NewForbidden("Admin privileges required")
	}

	var name string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		category, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return repository.MapError(err, "Category")
		}
		name = category.Name

		count, err := s.posts.CountByCategory(ctx, category.ID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if count > 0 {
			return inUseConflict(count)
		}

		if err := s.categories.Delete(ctx, category.ID); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return inUseConflict(1)
			}
			return repository.MapError(err, "Category")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.events.publish(ctx, events.New(events.EventCategoryDeleted, id, actor, events.CategoryPayload{Name: name}))
	return nil
}

func inUseConflict(count int) error {
	return apperrors.NewConflict(
		fmt.Sprintf("Cannot delete: %d post(s) still use this category. Remove the category from those posts first, or reassign them.", count),
		map[string]any{"post_count": count},
	)
}
