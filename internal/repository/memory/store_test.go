package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/policy"
	"github.com/spec-kit/blog-service/internal/repository"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func seedUser(t *testing.T, s *Store, name string) *domain.User {
	t.Helper()
	u := &domain.User{Username: name, Email: name + "@example.com", Role: domain.UserRoleWriter, Status: domain.AccountStatusActive}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestUsers_Uniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	err := s.Users().Create(ctx, &domain.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	bob := seedUser(t, s, "bob")
	bob.Email = alice.Email
	assert.ErrorIs(t, s.Users().Update(ctx, bob), repository.ErrDuplicate)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPosts_ListOrderingAndCategories(t *testing.T) {
	s := NewStore(WithClock(fixedClock()))
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	zeta := &domain.Category{Name: "Zeta"}
	alpha := &domain.Category{Name: "Alpha"}
	require.NoError(t, s.Categories().Create(ctx, zeta))
	require.NoError(t, s.Categories().Create(ctx, alpha))

	first := &domain.Post{Title: "first", Content: "c", Status: domain.PostStatusPublic, AuthorID: alice.ID, Tags: []string{"go"},
		Categories: []domain.Category{*zeta, *alpha}}
	second := &domain.Post{Title: "second", Content: "c", Status: domain.PostStatusDraft, AuthorID: alice.ID}
	require.NoError(t, s.Posts().Create(ctx, first))
	require.NoError(t, s.Posts().Create(ctx, second))

	posts, total, err := s.Posts().List(ctx, repository.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Title, "equal timestamps fall back to insertion order, newest first")

	got, err := s.Posts().GetByID(ctx, first.ID)
	require.NoError(t, err)
	want := domain.Post{
		ID: first.ID, Title: "first", Content: "c", Status: domain.PostStatusPublic, Tags: []string{"go"},
		AuthorID:   alice.ID,
		Author:     &domain.PostAuthor{ID: alice.ID, Username: "alice"},
		Categories: []domain.Category{*alpha, *zeta},
	}
	if diff := cmp.Diff(want, *got, cmpopts.IgnoreFields(domain.Post{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Fatalf("post mismatch (-want +got):\n%s", diff)
	}

	tag := "go"
	posts, total, err = s.Posts().List(ctx, repository.PostFilter{Tag: &tag})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first.ID, posts[0].ID)
}

func TestPosts_ListScopeAgreesWithCanViewPost(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")
	admin := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}

	var all []*domain.Post
	for _, author := range []*domain.User{alice, bob} {
		for _, status := range []domain.PostStatus{domain.PostStatusDraft, domain.PostStatusPublic, domain.PostStatusBanned} {
			p := &domain.Post{Title: string(status), Content: "c", Status: status, AuthorID: author.ID}
			require.NoError(t, s.Posts().Create(ctx, p))
			all = append(all, p)
		}
	}

	actors := map[string]*domain.User{"anonymous": nil, "alice": alice, "bob": bob, "admin": admin}
	authors := map[string]*string{"everyone": nil, "alice": &alice.ID, "bob": &bob.ID}
	for actorName, actor := range actors {
		for authorName, author := range authors {
			t.Run(actorName+"/"+authorName, func(t *testing.T) {
				var want []string
				for _, p := range all {
					if policy.CanViewPost(actor, p) && (author == nil || p.AuthorID == *author) {
						want = append(want, p.ID)
					}
				}

				posts, total, err := s.Posts().List(ctx, repository.PostFilter{Scope: policy.ListScope(actor, author)})
				require.NoError(t, err)
				got := make([]string, 0, len(posts))
				for _, p := range posts {
					got = append(got, p.ID)
				}
				assert.Equal(t, len(want), total)
				assert.ElementsMatch(t, want, got)
			})
		}
	}
}

func TestPosts_StatusWritesAreSeparate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	post := &domain.Post{Title: "t", Content: "c", Status: domain.PostStatusPublic, AuthorID: alice.ID}
	require.NoError(t, s.Posts().Create(ctx, post))

	stale := *post
	require.NoError(t, s.Posts().UpdateStatus(ctx, post.ID, domain.PostStatusPublic, domain.PostStatusBanned))

	stale.Title = "edited"
	require.NoError(t, s.Posts().Update(ctx, &stale))
	got, err := s.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, domain.PostStatusBanned, got.Status)

	err = s.Posts().UpdateStatus(ctx, post.ID, domain.PostStatusPublic, domain.PostStatusDraft)
	assert.ErrorIs(t, err, repository.ErrStale)
	assert.ErrorIs(t, s.Posts().UpdateStatus(ctx, "missing", domain.PostStatusPublic, domain.PostStatusDraft), repository.ErrNotFound)
}

func TestPosts_ListOffsetPastEnd(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	require.NoError(t, s.Posts().Create(ctx, &domain.Post{Title: "t", Content: "c", Status: domain.PostStatusPublic, AuthorID: alice.ID}))

	posts, total, err := s.Posts().List(ctx, repository.PostFilter{Limit: 100, Offset: domain.Offset(1_000_000, 100)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, posts)

	posts, _, err = s.Posts().List(ctx, repository.PostFilter{Limit: 100, Offset: -5})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestPosts_UnknownCategoryRejected(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")

	post := &domain.Post{Title: "t", Content: "c", AuthorID: alice.ID, Categories: []domain.Category{{ID: "missing"}}}
	assert.ErrorIs(t, s.Posts().Create(ctx, post), repository.ErrReferenced)

	_, total, err := s.Posts().List(ctx, repository.PostFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCountByCategory_AndReplace(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	cat := &domain.Category{Name: "Tech"}
	require.NoError(t, s.Categories().Create(ctx, cat))

	post := &domain.Post{Title: "t", Content: "c", AuthorID: alice.ID, Categories: []domain.Category{*cat}}
	require.NoError(t, s.Posts().Create(ctx, post))

	n, err := s.Posts().CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Posts().ReplaceCategories(ctx, post.ID, []string{}))
	n, err = s.Posts().CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteUser_CascadesPosts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	require.NoError(t, s.Posts().Create(ctx, &domain.Post{Title: "a", Content: "c", AuthorID: alice.ID}))
	require.NoError(t, s.Posts().Create(ctx, &domain.Post{Title: "b", Content: "c", AuthorID: bob.ID}))

	require.NoError(t, s.Users().Delete(ctx, alice.ID))

	posts, total, err := s.Posts().List(ctx, repository.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, bob.ID, posts[0].AuthorID)
}

func TestRevocations_Expire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, s.Revocations().Revoke(ctx, "live", now.Add(time.Minute)))
	require.NoError(t, s.Revocations().Revoke(ctx, "stale", now.Add(-time.Minute)))

	revoked, err := s.Revocations().IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.Revocations().IsRevoked(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, revoked)
}
