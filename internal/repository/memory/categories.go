package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
)

type categoryRepository struct {
	s *Store
}

func (r *categoryRepository) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(category.Name, "") {
		return repository.ErrDuplicate
	}
	category.ID = newID()
	r.s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) Update(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(category.Name, category.ID) {
		return repository.ErrDuplicate
	}
	r.s.categories[category.ID] = *category
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	for _, row := range r.s.posts {
		if slices.Contains(row.categoryIDs, id) {
			return repository.ErrReferenced
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *categoryRepository) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepository) GetByName(_ context.Context, name string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categoryRepository) GetByIDs(_ context.Context, ids []string) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	out := []domain.Category{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := r.s.categories[id]; ok {
			out = append(out, c)
		}
	}
	sortByName(out)
	return out, nil
}

func (r *categoryRepository) List(_ context.Context) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sortByName(out)
	return out, nil
}

func (r *categoryRepository) nameTaken(name, exceptID string) bool {
	for id, c := range r.s.categories {
		if id != exceptID && c.Name == name {
			return true
		}
	}
	return false
}

func sortByName(categories []domain.Category) {
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
}

