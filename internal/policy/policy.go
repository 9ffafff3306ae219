// Package policy holds the read and write decisions for posts and categories.
// Every handler and service path asks these functions instead of comparing
// ids and roles inline.
package policy

import "github.com/spec-kit/blog-service/internal/domain"

// CanViewPost reports whether actor may read post. Public posts are visible to
// everyone, owners always see their own posts and admins see everything.
func CanViewPost(actor *domain.User, post *domain.Post) bool {
	if post == nil {
		return false
	}
	if post.Status == domain.PostStatusPublic {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.ID == post.AuthorID || actor.IsAdmin()
}

// CanEditPost reports whether actor may change the content fields of post.
func CanEditPost(actor *domain.User, post *domain.Post) bool {
	return isOwner(actor, post)
}

// CanDeletePost reports whether actor may remove post.
func CanDeletePost(actor *domain.User, post *domain.Post) bool {
	return isOwner(actor, post)
}

// CanAssignPostStatus reports whether an author may move their own post to
// status. Banned is reserved for moderation.
func CanAssignPostStatus(actor *domain.User, status domain.PostStatus) bool {
	if actor == nil {
		return false
	}
	return status == domain.PostStatusDraft || status == domain.PostStatusPublic
}

// CanManageCategories reports whether actor may create, rename or delete
// categories.
func CanManageCategories(actor *domain.User) bool {
	return actor.IsAdmin()
}

// CanModerate reports whether actor may change account and post status.
func CanModerate(actor *domain.User) bool {
	return actor.IsAdmin()
}

func isOwner(actor *domain.User, post *domain.Post) bool {
	return actor != nil && post != nil && actor.ID == post.AuthorID
}

// Scope restricts a post listing to the rows an actor may see. A zero Scope
// places no restriction.
type Scope struct {
	// AuthorID keeps only posts written by this user.
	AuthorID *string
	// OwnerOrPublic keeps posts owned by this user plus every public post.
	OwnerOrPublic *string
	// PublicOnly keeps only public posts.
	PublicOnly bool
}

// ListScope derives the visible set for actor, optionally narrowed to a single
// author. Non-admins browsing another author only ever see that author's
// public posts.
func ListScope(actor *domain.User, authorFilter *string) Scope {
	if actor.IsAdmin() {
		return Scope{AuthorID: authorFilter}
	}
	if actor == nil {
		return Scope{AuthorID: authorFilter, PublicOnly: true}
	}
	if authorFilter == nil {
		id := actor.ID
		return Scope{OwnerOrPublic: &id}
	}
	if *authorFilter == actor.ID {
		return Scope{AuthorID: authorFilter}
	}
	return Scope{AuthorID: authorFilter, PublicOnly: true}
}

// Allows reports whether post falls inside the scope.
func (s Scope) Allows(post *domain.Post) bool {
	if s.AuthorID != nil && post.AuthorID != *s.AuthorID {
		return false
	}
	if s.PublicOnly && post.Status != domain.PostStatusPublic {
		return false
	}
	if s.OwnerOrPublic != nil && post.AuthorID != *s.OwnerOrPublic && post.Status != domain.PostStatusPublic {
		return false
	}
	return true
}
