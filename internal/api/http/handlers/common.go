package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/validation"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

const dateLayout = "2006-01-02"

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	return principal.User, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewInvalidInput("Invalid request body", map[string]any{"reason": err.Error()})
	}
	return nil
}

func pathID(c *fiber.Ctx) (string, error) {
	var v validation.Collector
	id := validation.Check(&v, "id", c.Params("id"), validation.ID())
	return id, v.Err()
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(v *validation.Collector, c *fiber.Ctx, key string, def int, rule validation.Rule[int]) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.Add(&validation.FieldError{Field: key, Message: "must be a valid integer"})
		return def
	}
	return validation.Check(v, key, n, rule)
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

func dateOfBirth(v *validation.Collector, raw *string, now func() time.Time) *time.Time {
	cleaned := validation.CheckOptional(v, "dob", raw, validation.DateOfBirth(now))
	if cleaned == nil {
		return nil
	}
	dob, err := validation.ParseDate(*cleaned)
	if err != nil {
		return nil
	}
	return &dob
}

func userResponse(u *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Fullname:      u.Fullname,
		Description:   u.Description,
		Role:          string(u.Role),
		AccountStatus: string(u.Status),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.DOB != nil {
		dob := u.DOB.Format(dateLayout)
		resp.DOB = &dob
	}
	return resp
}

func categoryResponse(cat domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: cat.ID, Name: cat.Name}
}

func categoryResponses(cats []domain.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryResponse(cat))
	}
	return out
}

func postResponse(p *domain.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Status:     p.Status,
		Tags:       p.Tags,
		AuthorID:   p.AuthorID,
		Author:     dto.PostAuthorResponse{ID: p.AuthorID},
		Categories: categoryResponses(p.Categories),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if p.Author != nil {
		resp.Author = dto.PostAuthorResponse{ID: p.Author.ID, Username: p.Author.Username, Fullname: p.Author.Fullname}
	}
	return resp
}

func listResponse[T, R any](page domain.Page[T], convert func(*T) R) dto.ListResponse[R] {
	items := make([]R, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, convert(&page.Items[i]))
	}
	return dto.ListResponse[R]{Items: items, Total: page.Total, Page: page.Page, PageSize: page.PageSize}
}
