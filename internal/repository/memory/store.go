// Package memory provides process-local implementations of every repository
// interface. It backs STORE_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
)

type postRow struct {
	post        domain.Post
	categoryIDs []string
	seq         int64
}

// Store is a mutex-guarded set of tables. The zero value is not usable; call
// NewStore.
type Store struct {
	mu sync.RWMutex

	now func() time.Time
	seq int64

	users      map[string]domain.User
	userSeq    map[string]int64
	categories map[string]domain.Category
	posts      map[string]*postRow
	revoked    map[string]time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:        func() time.Time { return time.Now().UTC() },
		users:      make(map[string]domain.User),
		userSeq:    make(map[string]int64),
		categories: make(map[string]domain.Category),
		posts:      make(map[string]*postRow),
		revoked:    make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Users exposes the account table.
func (s *Store) Users() repository.UserRepository { return &userRepository{s: s} }

// Categories exposes the category table.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepository{s: s} }

// Posts exposes the post table and its category links.
func (s *Store) Posts() repository.PostRepository { return &postRepository{s: s} }

// Revocations exposes the revoked token set.
func (s *Store) Revocations() repository.RevocationRepository { return &revocationRepository{s: s} }

// Transactor returns a Transactor that runs fn directly. Each repository call
// is already serialized by the store mutex.
func (s *Store) Transactor() repository.Transactor { return transactor{} }

type transactor struct{}

func (transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func newID() string { return uuid.NewString() }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// assemblePost joins the author summary and categories onto a stored row.
// Callers hold at least the read lock.
func (s *Store) assemblePost(row *postRow) domain.Post {
	post := row.post
	post.Tags = cloneStrings(row.post.Tags)
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if author, ok := s.users[post.AuthorID]; ok {
		post.Author = &domain.PostAuthor{ID: author.ID, Username: author.Username, Fullname: author.Fullname}
	}
	post.Categories = []domain.Category{}
	for _, id := range row.categoryIDs {
		if c, ok := s.categories[id]; ok {
			post.Categories = append(post.Categories, c)
		}
	}
	sort.SliceStable(post.Categories, func(i, j int) bool { return post.Categories[i].Name < post.Categories[j].Name })
	return post
}
