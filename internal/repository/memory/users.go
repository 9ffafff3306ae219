package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	now := r.s.now()
	user.ID = newID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	r.s.userSeq[user.ID] = r.s.nextSeq()
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.Username = current.Username
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = r.s.now()
	r.s.users[user.ID] = *user
	return nil
}

// Delete removes the account together with its posts.
func (r *userRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	delete(r.s.userSeq, id)
	for postID, row := range r.s.posts {
		if row.post.AuthorID == id {
			delete(r.s.posts, postID)
		}
	}
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *userRepository) List(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return r.s.userSeq[users[i].ID] < r.s.userSeq[users[j].ID]
	})
	return paginate(users, limit, offset), nil
}

func (r *userRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

func (r *userRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
