package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
)

type postRepository struct {
	s *Store
}

func (r *postRepository) Create(_ context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return repository.ErrReferenced
	}
	ids, err := r.resolveLinks(post.CategoryIDs())
	if err != nil {
		return err
	}

	now := r.s.now()
	post.ID = newID()
	post.CreatedAt = now
	post.UpdatedAt = now

	stored := *post
	stored.Tags = cloneStrings(post.Tags)
	stored.Author = nil
	stored.Categories = nil
	r.s.posts[post.ID] = &postRow{post: stored, categoryIDs: ids, seq: r.s.nextSeq()}
	return nil
}

func (r *postRepository) Update(_ context.Context, post *domain.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.posts[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	post.UpdatedAt = r.s.now()
	row.post.Title = post.Title
	row.post.Content = post.Content
	row.post.Tags = cloneStrings(post.Tags)
	row.post.UpdatedAt = post.UpdatedAt
	return nil
}

func (r *postRepository) UpdateStatus(_ context.Context, id string, from, to domain.PostStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if row.post.Status != from {
		return repository.ErrStale
	}
	row.post.Status = to
	row.post.UpdatedAt = r.s.now()
	return nil
}

func (r *postRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *postRepository) GetByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	post := r.s.assemblePost(row)
	return &post, nil
}

func (r *postRepository) List(_ context.Context, filter repository.PostFilter) ([]domain.Post, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*postRow, 0, len(r.s.posts))
	for _, row := range r.s.posts {
		if matches(row, filter) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.seq > b.seq
	})

	total := len(rows)
	rows = paginate(rows, filter.Limit, filter.Offset)
	posts := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, r.s.assemblePost(row))
	}
	return posts, total, nil
}

func (r *postRepository) ReplaceCategories(_ context.Context, postID string, categoryIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	ids, err := r.resolveLinks(categoryIDs)
	if err != nil {
		return err
	}
	row.categoryIDs = ids
	return nil
}

func (r *postRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, row := range r.s.posts {
		if slices.Contains(row.categoryIDs, categoryID) {
			count++
		}
	}
	return count, nil
}

// resolveLinks dedupes ids and fails like a foreign key when one is unknown.
func (r *postRepository) resolveLinks(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := r.s.categories[id]; !ok {
			return nil, repository.ErrReferenced
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out, nil
}

func matches(row *postRow, f repository.PostFilter) bool {
	p := row.post
	switch {
	case !f.Scope.Allows(&p):
		return false
	case f.Status != nil && p.Status != *f.Status:
		return false
	case f.Tag != nil && !slices.Contains(p.Tags, *f.Tag):
		return false
	}
	return true
}
