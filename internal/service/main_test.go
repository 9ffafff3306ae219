package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository/memory"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type env struct {
	store      *memory.Store
	dispatcher events.Dispatcher
	published  []events.Event
	auth       *AuthService
	users      *UserService
	posts      *PostService
	categories *CategoryService
	moderation *ModerationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	logger := zap.NewNop()
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4}}

	e := &env{store: store, dispatcher: dispatcher}
	dispatcher.SubscribeAll(func(_ context.Context, ev events.Event) error {
		e.published = append(e.published, ev)
		return nil
	})

	e.auth = NewAuthService(cfg, AuthDependencies{UserRepo: store.Users(), RevocationRepo: store.Revocations(), Logger: logger})
	e.users = NewUserService(UserDependencies{UserRepo: store.Users()})
	e.posts = NewPostService(PostDependencies{
		PostRepo: store.Posts(), CategoryRepo: store.Categories(), Transactor: store.Transactor(),
		Dispatcher: dispatcher, Logger: logger,
	})
	e.categories = NewCategoryService(CategoryDependencies{
		CategoryRepo: store.Categories(), PostRepo: store.Posts(), Transactor: store.Transactor(),
		Dispatcher: dispatcher, Logger: logger,
	})
	e.moderation = NewModerationService(ModerationDependencies{
		UserRepo: store.Users(), PostRepo: store.Posts(), Dispatcher: dispatcher, Logger: logger,
	})
	return e
}

func (e *env) writer(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{Username: name, Email: name + "@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	return u
}

func (e *env) admin(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := e.auth.CreateAdmin(context.Background(), RegisterInput{Username: name, Email: name + "@example.com", Password: "Str0ngPass"})
	require.NoError(t, err)
	return u
}

func (e *env) category(t *testing.T, admin *domain.User, name string) *domain.Category {
	t.Helper()
	c, err := e.categories.Create(context.Background(), admin, name)
	require.NoError(t, err)
	return c
}

func (e *env) post(t *testing.T, author *domain.User, status domain.PostStatus, categoryIDs ...string) *domain.Post {
	t.Helper()
	p, err := e.posts.Create(context.Background(), author, PostCreateInput{
		Title: "title", Content: "content", Status: status, CategoryIDs: categoryIDs,
	})
	require.NoError(t, err)
	return p
}

func (e *env) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(e.published))
	for _, ev := range e.published {
		out = append(out, ev.Type)
	}
	return out
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.CodeOf(err), err.Error())
}

func ptr[T any](v T) *T { return &v }

