package domain

import "time"

// PostStatus enumerates visibility states for posts.
type PostStatus string

const (
	PostStatusDraft  PostStatus = "draft"
	PostStatusPublic PostStatus = "public"
	PostStatusBanned PostStatus = "banned"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublic, PostStatusBanned:
		return true
	}
	return false
}

// PostAuthor is the public projection of a post's owner.
type PostAuthor struct {
	ID       string
	Username string
	Fullname *string
}

// Post is an article owned by exactly one user.
type Post struct {
	ID         string
	Title      string
	Content    string
	Status     PostStatus
	Tags       []string
	AuthorID   string
	Author     *PostAuthor
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategoryIDs returns the ids of the linked categories.
func (p *Post) CategoryIDs() []string {
	ids := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
