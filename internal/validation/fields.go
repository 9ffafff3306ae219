package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/blog-service/internal/domain"
)

const dateLayout = "2006-01-02"

var (
	usernamePattern     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	tagPattern          = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)
	categoryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 _\-&]+$`)
	upperPattern        = regexp.MustCompile(`[A-Z]`)
	lowerPattern        = regexp.MustCompile(`[a-z]`)
	digitPattern        = regexp.MustCompile(`\d`)
)

var (
	usernameRule = Chain(
		Length(3, 50),
		Matches(usernamePattern, "Username must contain only letters, digits, and underscores"),
	)
	emailRule = Chain(
		Trim(),
		Lower(),
		Length(0, 255),
		Matches(emailPattern, "Invalid email format"),
	)
	passwordRule = Chain(
		Length(8, 128),
		Contains(upperPattern, "Password must contain at least one uppercase letter"),
		Contains(lowerPattern, "Password must contain at least one lowercase letter"),
		Contains(digitPattern, "Password must contain at least one digit"),
	)
	fullnameRule = Chain(
		Trim(),
		NotBlank("Fullname cannot be blank"),
		Length(0, 100),
	)
	descriptionRule = Length(0, 500)
	titleRule       = Chain(
		Trim(),
		NotBlank("Title cannot be blank"),
		Length(1, 300),
	)
	contentRule = Chain(
		Length(1, -1),
		NotBlank("Content cannot be blank"),
	)
	categoryNameRule = Chain(
		Length(1, 100),
		Trim(),
		NotBlank("Category name cannot be blank"),
		Matches(categoryNamePattern, "Category name can only contain letters, digits, spaces, hyphens, underscores, and ampersands"),
	)
)

// Username validates a login name.
func Username() Rule[string] { return usernameRule }

// Email validates and normalizes an email address.
func Email() Rule[string] { return emailRule }

// Password enforces length and character-class complexity.
func Password() Rule[string] { return passwordRule }

// Fullname validates and trims a display name.
func Fullname() Rule[string] { return fullnameRule }

// Description bounds a profile description.
func Description() Rule[string] { return descriptionRule }

// Title validates and trims a post title.
func Title() Rule[string] { return titleRule }

// Content rejects empty post bodies.
func Content() Rule[string] { return contentRule }

// CategoryName validates and trims a category name.
func CategoryName() Rule[string] { return categoryNameRule }

// Tags lowercases and trims each tag, drops empty entries and checks the
// character set and length. Duplicates after normalization are kept.
func Tags() Rule[[]string] {
	return func(tags []string) ([]string, error) {
		cleaned := make([]string, 0, len(tags))
		for _, tag := range tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			if !tagPattern.MatchString(tag) {
				return nil, fmt.Errorf("Tag '%s' contains invalid characters. Only letters, digits, spaces, hyphens and underscores allowed", tag)
			}
			if len([]rune(tag)) > 50 {
				return nil, fmt.Errorf("Tag '%s' exceeds 50 characters", tag)
			}
			cleaned = append(cleaned, tag)
		}
		return cleaned, nil
	}
}

// DateOfBirth parses a YYYY-MM-DD date that must lie strictly before the day
// returned by now.
func DateOfBirth(now func() time.Time) Rule[string] {
	return func(raw string) (string, error) {
		dob, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			return raw, errors.New("Date of birth must be a date in YYYY-MM-DD format")
		}
		n := now()
		today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
		if !dob.Before(today) {
			return raw, errors.New("Date of birth must be in the past")
		}
		return dob.Format(dateLayout), nil
	}
}

// ParseDate converts a value already accepted by DateOfBirth.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// PostStatus accepts any known post status.
func PostStatus() Rule[domain.PostStatus] {
	return func(s domain.PostStatus) (domain.PostStatus, error) {
		s = domain.PostStatus(strings.ToLower(strings.TrimSpace(string(s))))
		if !s.Valid() {
			return s, errors.New("Status must be one of: public, draft, banned")
		}
		return s, nil
	}
}

// AuthorPostStatus is PostStatus minus banned, which only moderators may set.
func AuthorPostStatus() Rule[domain.PostStatus] {
	return Chain[domain.PostStatus](PostStatus(), func(s domain.PostStatus) (domain.PostStatus, error) {
		if s == domain.PostStatusBanned {
			return s, errors.New("Users cannot set post status to 'banned'")
		}
		return s, nil
	})
}

// AccountStatus accepts active or banned.
func AccountStatus() Rule[domain.AccountStatus] {
	return func(s domain.AccountStatus) (domain.AccountStatus, error) {
		s = domain.AccountStatus(strings.ToLower(strings.TrimSpace(string(s))))
		switch s {
		case domain.AccountStatusActive, domain.AccountStatusBanned:
			return s, nil
		}
		return s, errors.New("Account status must be one of: active, banned")
	}
}

// ID requires a UUID and returns its canonical form.
func ID() Rule[string] {
	return func(s string) (string, error) {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return s, errors.New("must be a valid UUID")
		}
		return id.String(), nil
	}
}

// IDs applies ID to every element.
func IDs() Rule[[]string] {
	return func(ids []string) ([]string, error) {
		out := make([]string, 0, len(ids))
		for _, raw := range ids {
			id, err := ID()(raw)
			if err != nil {
				return nil, fmt.Errorf("'%s' %v", raw, err)
			}
			out = append(out, id)
		}
		return out, nil
	}
}

// Between bounds an integer to [min, max].
func Between(min, max int) Rule[int] {
	return func(v int) (int, error) {
		if v < min || v > max {
			return v, fmt.Errorf("must be between %d and %d", min, max)
		}
		return v, nil
	}
}

// AtLeast requires v >= min.
func AtLeast(min int) Rule[int] {
	return func(v int) (int, error) {
		if v < min {
			return v, fmt.Errorf("must be greater than or equal to %d", min)
		}
		return v, nil
	}
}

// MaxPage is the largest accepted page number.
const MaxPage = 1_000_000

// AtMost requires v <= max.
func AtMost(max int) Rule[int] {
	return func(v int) (int, error) {
		if v > max {
			return v, fmt.Errorf("must be less than or equal to %d", max)
		}
		return v, nil
	}
}

// Page requires a 1-indexed page number no larger than MaxPage.
func Page() Rule[int] { return Chain(AtLeast(1), AtMost(MaxPage)) }

// PageSize bounds a page size to [1, max].
func PageSize(max int) Rule[int] { return Between(1, max) }
