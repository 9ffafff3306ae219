package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AdminPostListQuery filters the unrestricted post listing.
type AdminPostListQuery struct {
	Page     int
	PageSize int
	Status   *domain.PostStatus
}

// ModerationService is the admin path over accounts and posts. Callers are
// expected to have passed auth.RequireAdmin; only existence is checked here.
// Status changes are unconditional: any status may move to any other.
type ModerationService struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	events publisher
}

// ModerationDependencies bundles repositories for moderation service.
type ModerationDependencies struct {
	UserRepo   repository.UserRepository
	PostRepo   repository.PostRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewModerationService constructs the service.
func NewModerationService(deps ModerationDependencies) *ModerationService {
	return &ModerationService{
		users:  deps.UserRepo,
		posts:  deps.PostRepo,
		events: newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// ListUsers pages through every account in registration order.
func (s *ModerationService) ListUsers(ctx context.Context, page, pageSize int) (domain.Page[domain.User], error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return domain.Page[domain.User]{}, apperrors.MapError(err)
	}
	users, err := s.users.List(ctx, pageSize, domain.Offset(page, pageSize))
	if err != nil {
		return domain.Page[domain.User]{}, apperrors.MapError(err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return domain.Page[domain.User]{Items: users, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListPosts pages through every post regardless of owner or status.
func (s *ModerationService) ListPosts(ctx context.Context, query AdminPostListQuery) (domain.Page[domain.Post], error) {
	posts, total, err := s.posts.List(ctx, repository.PostFilter{
		Status: query.Status,
		Limit:  query.PageSize,
		Offset: domain.Offset(query.Page, query.PageSize),
	})
	if err != nil {
		return domain.Page[domain.Post]{}, apperrors.MapError(err)
	}
	return domain.Page[domain.Post]{Items: posts, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

// SetUserStatus overwrites an account status.
func (s *ModerationService) SetUserStatus(ctx context.Context, admin *domain.User, userID string, status domain.AccountStatus) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, repository.MapError(err, "User")
	}
	old := user.Status
	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repository.MapError(err, "User")
	}
	s.events.publish(ctx, events.New(events.EventUserStatusChanged, user.ID, admin, events.UserStatusChangedPayload{
		OldStatus: old,
		NewStatus: status,
	}))
	return user, nil
}

// SetPostStatus overwrites a post status, including banned.
func (s *ModerationService) SetPostStatus(ctx context.Context, admin *domain.User, postID string, status domain.PostStatus) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, repository.MapError(err, "Post")
	}
	old := post.Status
	if err := s.posts.UpdateStatus(ctx, post.ID, old, status); err != nil {
		return nil, repository.MapError(err, "Post")
	}
	if post, err = s.posts.GetByID(ctx, postID); err != nil {
		return nil, repository.MapError(err, "Post")
	}
	s.events.publish(ctx, events.New(events.EventPostStatusChanged, post.ID, admin, events.PostStatusChangedPayload{
		OldStatus: old,
		NewStatus: status,
	}))
	return post, nil
}

// DeleteUser removes an account and, through the store, all of its posts.
func (s *ModerationService) DeleteUser(ctx context.Context, admin *domain.User, userID string) error {
	if admin != nil && admin.ID == userID {
		return apperrors.NewForbidden("Administrators cannot delete their own account")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return repository.MapError(err, "User")
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return repository.MapError(err, "User")
	}
	s.events.publish(ctx, events.New(events.EventUserDeleted, user.ID, admin, events.UserDeletedPayload{Username: user.Username}))
	return nil
}
