package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/policy"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func Test_buildPostListQuery_OwnerOrPublic(t *testing.T) {
	owner := "user-1"
	tag := "go"

	query, args, err := buildPostListQuery(PostFilter{Scope: policy.Scope{OwnerOrPublic: &owner}, Tag: &tag, Limit: 10, Offset: 20})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from posts p join users u on u.id = p.author_id")
	assert.Contains(t, q, "(p.author_id = $1 or p.status = $2)")
	assert.Contains(t, q, "$3 = any(p.tags)")
	assert.Contains(t, q, "order by p.created_at desc, p.id desc")
	assert.Contains(t, q, "limit 10")
	assert.Contains(t, q, "offset 20")
	assert.Equal(t, []any{"user-1", "public", "go"}, args)
}

func Test_buildPostListQuery_OtherAuthorPublicOnly(t *testing.T) {
	author := "user-2"
	status := domain.PostStatusPublic

	query, args, err := buildPostListQuery(PostFilter{Scope: policy.Scope{AuthorID: &author, PublicOnly: true}, Status: &status})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "p.author_id = $1")
	assert.Contains(t, q, "p.status = $2")
	assert.Contains(t, q, "p.status = $3")
	assert.NotContains(t, q, "limit")
	assert.Equal(t, []any{"user-2", "public", "public"}, args)
}

func Test_buildPostCountQuery_NoFilter(t *testing.T) {
	query, args, err := buildPostCountQuery(PostFilter{})
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM posts p", query)
	assert.Empty(t, args)
}

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil, "Post"))
	assert.EqualError(t, MapError(ErrNotFound, "Post"), "Post not found")
	assert.EqualError(t, MapError(ErrDuplicate, "Category"), "Category already exists")
}

func TestMapError_Stale(t *testing.T) {
	err := MapError(fmt.Errorf("update: %w", ErrStale), "Post")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
	assert.EqualError(t, err, "Post was modified concurrently, retry the request")
}
