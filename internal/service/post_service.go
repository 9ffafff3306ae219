package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/policy"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const bannedStatusMessage = "Users cannot set post status to 'banned'"

// PostCreateInput describes post creation payload.
type PostCreateInput struct {
	Title       string
	Content     string
	Status      domain.PostStatus
	Tags        []string
	CategoryIDs []string
}

// PostUpdateInput describes a partial post update. A nil field is left
// untouched; a non-nil empty CategoryIDs clears every category.
type PostUpdateInput struct {
	Title       *string
	Content     *string
	Status      *domain.PostStatus
	Tags        *[]string
	CategoryIDs *[]string
}

// PostListQuery describes listing filters.
type PostListQuery struct {
	Page     int
	PageSize int
	Status   *domain.PostStatus
	Tag      *string
	AuthorID *string
}

// PostService coordinates post workflows for authors and readers.
type PostService struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	tx         repository.Transactor
	events     publisher
}

// PostDependencies bundles repositories for post service.
type PostDependencies struct {
	PostRepo     repository.PostRepository
	CategoryRepo repository.CategoryRepository
	Transactor   repository.Transactor
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewPostService constructs the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		posts:      deps.PostRepo,
		categories: deps.CategoryRepo,
		tx:         deps.Transactor,
		events:     newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// Create writes a new post owned by author. Either every category resolves
// and the post is stored with its links, or nothing is written.
func (s *PostService) Create(ctx context.Context, author *domain.User, input PostCreateInput) (*domain.Post, error) {
	status := input.Status
	if status == "" {
		status = domain.PostStatusDraft
	}
	if !policy.CanAssignPostStatus(author, status) {
		return nil, apperrors.NewInvalidInput(bannedStatusMessage, nil)
	}

	post := &domain.Post{
		Title:    input.Title,
		Content:  input.Content,
		Status:   status,
		Tags:     input.Tags,
		AuthorID: author.ID,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		categories, err := s.resolveCategories(ctx, input.CategoryIDs)
		if err != nil {
			return err
		}
		post.Categories = categories
		return s.posts.Create(ctx, post)
	})
	if err != nil {
		return nil, s.mapWriteError(err)
	}

	s.events.publish(ctx, events.New(events.EventPostCreated, post.ID, author, events.PostCreatedPayload{
		Title:       post.Title,
		Status:      post.Status,
		CategoryIDs: post.CategoryIDs(),
	}))
	return s.load(ctx, post.ID)
}

// Get returns a post the actor may read.
func (s *PostService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPost(actor, post) {
		return nil, apperrors.NewForbidden("You do not have access to this post")
	}
	return post, nil
}

// List pages through the posts visible to actor, newest first.
func (s *PostService) List(ctx context.Context, actor *domain.User, query PostListQuery) (domain.Page[domain.Post], error) {
	filter := repository.PostFilter{
		Scope:  policy.ListScope(actor, query.AuthorID),
		Status: query.Status,
		Limit:  query.PageSize,
		Offset: domain.Offset(query.Page, query.PageSize),
	}
	if query.Tag != nil {
		tag := strings.ToLower(strings.TrimSpace(*query.Tag))
		if tag != "" {
			filter.Tag = &tag
		}
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return domain.Page[domain.Post]{}, apperrors.MapError(err)
	}
	return domain.Page[domain.Post]{Items: posts, Total: total, Page: query.Page, PageSize: query.PageSize}, nil
}

// Update applies the supplied fields to a post owned by actor.
func (s *PostService) Update(ctx context.Context, actor *domain.User, id string, input PostUpdateInput) (*domain.Post, error) {
	post, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEditPost(actor, post) {
		return nil, apperrors.NewForbidden("You can only edit your own posts")
	}
	if input.Status != nil {
		if !policy.CanAssignPostStatus(actor, *input.Status) {
			return nil, apperrors.NewInvalidInput(bannedStatusMessage, nil)
		}
		if post.Status == domain.PostStatusBanned && *input.Status != domain.PostStatusBanned {
			return nil, apperrors.NewForbidden("This post has been banned by a moderator")
		}
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if input.CategoryIDs != nil {
			categories, err := s.resolveCategories(ctx, *input.CategoryIDs)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(categories))
			for _, c := range categories {
				ids = append(ids, c.ID)
			}
			if err := s.posts.ReplaceCategories(ctx, post.ID, ids); err != nil {
				return err
			}
		}
		if err := s.posts.Update(ctx, post); err != nil {
			return err
		}
		if input.Status != nil && *input.Status != post.Status {
			return s.posts.UpdateStatus(ctx, post.ID, post.Status, *input.Status)
		}
		return nil
	})
	if err != nil {
		return nil, s.mapWriteError(err)
	}
	return s.load(ctx, post.ID)
}

// Delete removes a post owned by actor.
func (s *PostService) Delete(ctx context.Context, actor *domain.User, id string) error {
	post, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeletePost(actor, post) {
		return apperrors.NewForbidden("You can only delete your own posts")
	}
	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return repository.MapError(err, "Post")
	}
	s.events.publish(ctx, events.New(events.EventPostDeleted, post.ID, actor, events.PostDeletedPayload{AuthorID: post.AuthorID}))
	return nil
}

func (s *PostService) load(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, repository.MapError(err, "Post")
	}
	return post, nil
}

// resolveCategories fetches ids in one round trip. Repeats are dropped and the
// first unknown id in request order is reported.
func (s *PostService) resolveCategories(ctx context.Context, ids []string) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}
	found, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Category, len(found))
	for _, category := range found {
		byID[category.ID] = category
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		category, ok := byID[id]
		if !ok {
			return nil, apperrors.NewInvalidInput(fmt.Sprintf("Category %s not found", id), map[string]any{"category_id": id})
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *PostService) mapWriteError(err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, repository.ErrReferenced) {
		return apperrors.NewInvalidInput("A referenced category no longer exists", nil)
	}
	return repository.MapError(err, "Post")
}
