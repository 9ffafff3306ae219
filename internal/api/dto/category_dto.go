package dto

// CategoryRequest payload for create and rename.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryRenameResponse carries the renamed category and, when posts already
// reference it, an advisory message.
type CategoryRenameResponse struct {
	CategoryResponse
	Warning *string `json:"warning,omitempty"`
}
