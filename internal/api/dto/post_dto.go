package dto

import (
	"time"

	"github.com/spec-kit/blog-service/internal/domain"
)

// PostCreateRequest payload.
type PostCreateRequest struct {
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Status      *domain.PostStatus `json:"status"`
	Tags        []string           `json:"tags"`
	CategoryIDs []string           `json:"category_ids"`
}

// PostUpdateRequest is a partial update. A missing category_ids leaves links
// untouched, an empty list clears them.
type PostUpdateRequest struct {
	Title       *string            `json:"title"`
	Content     *string            `json:"content"`
	Status      *domain.PostStatus `json:"status"`
	Tags        *[]string          `json:"tags"`
	CategoryIDs *[]string          `json:"category_ids"`
}

// PostAuthorResponse summarizes the owner of a post.
type PostAuthorResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Fullname *string `json:"fullname"`
}

// PostResponse represents a post with its author and categories.
type PostResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Status     domain.PostStatus  `json:"status"`
	Tags       []string           `json:"tags"`
	AuthorID   string             `json:"author_id"`
	Author     PostAuthorResponse `json:"author"`
	Categories []CategoryResponse `json:"categories"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
