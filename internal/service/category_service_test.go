package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func TestCreateCategory_DuplicateName(t *testing.T) {
	e := newEnv(t)
	admin := e.admin(t, "root")
	e.category(t, admin, "Tech")

	_, err := e.categories.Create(context.Background(), admin, "Tech")
	requireCode(t, err, apperrors.CodeConflict)
	assert.EqualError(t, err, "Category name already exists")
}

func TestCreateCategory_RequiresAdmin(t *testing.T) {
	e := newEnv(t)
	alice := e.writer(t, "alice")

	_, err := e.categories.Create(context.Background(), alice, "Tech")
	requireCode(t, err, apperrors.CodeForbidden)
}

func TestRenameCategory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t, "root")
	alice := e.writer(t, "alice")
	tech := e.category(t, admin, "Tech")
	e.category(t, admin, "Science")

	_, err := e.categories.Rename(ctx, admin, tech.ID, "Science")
	requireCode(t, err, apperrors.CodeConflict)

	result, err := e.categories.Rename(ctx, admin, tech.ID, "Technology")
	require.NoError(t, err)
	assert.Equal(t, "Technology", result.Category.Name)
	assert.Nil(t, result.Warning)

	e.post(t, alice, domain.PostStatusDraft, tech.ID)
	result, err = e.categories.Rename(ctx, admin, tech.ID, "Tech")
	require.NoError(t, err)
	require.NotNil(t, result.Warning)
	assert.Equal(t, "This category has been renamed. 1 post(s) are associated with it.", *result.Warning)

	_, err = e.categories.Rename(ctx, admin, tech.ID, "Tech")
	require.NoError(t, err, "renaming to its own name is not a collision")

	_, err = e.categories.Rename(ctx, admin, "00000000-0000-0000-0000-000000000001", "Other")
	requireCode(t, err, apperrors.CodeNotFound)
	assert.EqualError(t, err, "Category not found")
}

func TestDeleteCategory_BlockedWhileReferenced(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.admin(t, "root")
	alice := e.writer(t, "alice")
	x := e.category(t, admin, "X")
	p := e.post(t, alice, domain.PostStatusPublic, x.ID)

	err := e.categories.Delete(ctx, admin, x.ID)
	requireCode(t, err, apperrors.CodeConflict)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 1, de.Details["post_count"])
	assert.Contains(t, de.Message, "Cannot delete: 1 post(s) still use this category.")

	_, err = e.posts.Update(ctx, alice, p.ID, PostUpdateInput{CategoryIDs: &[]string{}})
	require.NoError(t, err)

	require.NoError(t, e.categories.Delete(ctx, admin, x.ID))
	_, err = e.categories.Get(ctx, x.ID)
	requireCode(t, err, apperrors.CodeNotFound)
	assert.Contains(t, e.eventTypes(), events.EventCategoryDeleted)
}

func TestListCategories_OrderedByName(t *testing.T) {
	e := newEnv(t)
	admin := e.admin(t, "root")
	e.category(t, admin, "Zeta")
	e.category(t, admin, "Alpha")

	list, err := e.categories.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)
}
