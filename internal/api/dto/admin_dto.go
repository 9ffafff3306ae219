package dto

import "github.com/spec-kit/blog-service/internal/domain"

// AccountStatusRequest payload for PATCH /admin/users/:id/status.
type AccountStatusRequest struct {
	AccountStatus domain.AccountStatus `json:"account_status"`
}

// PostStatusRequest payload for PATCH /admin/posts/:id/status.
type PostStatusRequest struct {
	Status domain.PostStatus `json:"status"`
}

// ListResponse wraps one page of a listing.
type ListResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
