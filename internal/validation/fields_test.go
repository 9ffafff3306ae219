package validation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

func TestChain_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	count := func(s string) (string, error) { calls++; return s, nil }
	rule := Chain[string](count, NotBlank("blank"), count)

	_, err := rule("  ")
	require.EqualError(t, err, "blank")
	assert.Equal(t, 1, calls)
}

func TestUsername(t *testing.T) {
	for _, ok := range []string{"bob", "alice_99", strings.Repeat("a", 50)} {
		_, err := Username()(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"ab", "bad name", "dash-name", strings.Repeat("a", 51)} {
		_, err := Username()(bad)
		assert.Error(t, err, bad)
	}
}

func TestEmail_Normalizes(t *testing.T) {
	got, err := Email()("Alice@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	_, err = Email()("not-an-email")
	assert.EqualError(t, err, "Invalid email format")
}

func TestEmail_TrimsBeforeMatching(t *testing.T) {
	got, err := Email()("  Bob@Example.com\n")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)

	_, err = Email()("   ")
	assert.EqualError(t, err, "Invalid email format")
}

func TestTrimmedLengthLimits(t *testing.T) {
	padded := "  " + strings.Repeat("a", 300) + "  "
	got, err := Title()(padded)
	require.NoError(t, err)
	assert.Len(t, got, 300)

	_, err = Title()("   ")
	assert.EqualError(t, err, "Title cannot be blank")

	got, err = Fullname()(" " + strings.Repeat("b", 100) + " ")
	require.NoError(t, err)
	assert.Len(t, got, 100)
}

func TestPassword(t *testing.T) {
	cases := map[string]string{
		"Short1":       "must be at least 8 characters",
		"alllower123":  "Password must contain at least one uppercase letter",
		"ALLUPPER123":  "Password must contain at least one lowercase letter",
		"NoDigitsHere": "Password must contain at least one digit",
	}
	for pw, msg := range cases {
		_, err := Password()(pw)
		assert.EqualError(t, err, msg, pw)
	}
	_, err := Password()("Str0ngPass")
	assert.NoError(t, err)
}

func TestTags_NormalizesWithoutDedup(t *testing.T) {
	got, err := Tags()([]string{"  Go ", "", "go", "Web-Dev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "go", "web-dev"}, got)

	_, err = Tags()([]string{"c++"})
	assert.ErrorContains(t, err, "contains invalid characters")

	_, err = Tags()([]string{strings.Repeat("x", 51)})
	assert.ErrorContains(t, err, "exceeds 50 characters")
}

func TestCategoryName(t *testing.T) {
	got, err := CategoryName()("  Science & Tech ")
	require.NoError(t, err)
	assert.Equal(t, "Science & Tech", got)

	_, err = CategoryName()("   ")
	assert.EqualError(t, err, "Category name cannot be blank")

	_, err = CategoryName()("news!")
	assert.ErrorContains(t, err, "can only contain")
}

func TestDateOfBirth(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC) }

	got, err := DateOfBirth(now)("1990-05-01")
	require.NoError(t, err)
	assert.Equal(t, "1990-05-01", got)

	_, err = DateOfBirth(now)("2026-10-14")
	assert.EqualError(t, err, "Date of birth must be in the past")

	_, err = DateOfBirth(now)("14/10/1990")
	assert.Error(t, err)
}

func TestAuthorPostStatus_RejectsBanned(t *testing.T) {
	_, err := AuthorPostStatus()(domain.PostStatusBanned)
	assert.EqualError(t, err, "Users cannot set post status to 'banned'")

	got, err := AuthorPostStatus()("PUBLIC")
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusPublic, got)

	_, err = AuthorPostStatus()("archived")
	assert.Error(t, err)
}

func TestPostStatus_AllowsBanned(t *testing.T) {
	got, err := PostStatus()(domain.PostStatusBanned)
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusBanned, got)
}

func TestID(t *testing.T) {
	got, err := ID()("6F9619FF-8B86-D011-B42D-00C04FC964FF")
	require.NoError(t, err)
	assert.Equal(t, "6f9619ff-8b86-d011-b42d-00c04fc964ff", got)

	_, err = IDs()([]string{"nope"})
	assert.ErrorContains(t, err, "must be a valid UUID")
}

func TestCollector(t *testing.T) {
	var c Collector
	name := Check(&c, "username", "ok_name", Username())
	Check(&c, "password", "weak", Password())
	Check(&c, "email", "bad", Email())
	assert.Nil(t, CheckOptional[string](&c, "fullname", nil, Fullname()))

	assert.Equal(t, "ok_name", name)
	err := c.Err()
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))

	de := apperrors.ToDomainError(err)
	fields := de.Details["fields"].(map[string]string)
	assert.Len(t, fields, 2)
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "email")
	assert.Equal(t, fields["password"], de.Message)
}

func TestCollector_Empty(t *testing.T) {
	var c Collector
	Check(&c, "page", 1, AtLeast(1))
	assert.NoError(t, c.Err())
}

func TestPagination(t *testing.T) {
	_, err := Page()(0)
	assert.EqualError(t, err, "must be greater than or equal to 1")
	_, err = Page()(math.MaxInt)
	assert.EqualError(t, err, "must be less than or equal to 1000000")
	got, err := Page()(MaxPage)
	require.NoError(t, err)
	assert.Equal(t, MaxPage, got)
	_, err = PageSize(100)(101)
	assert.EqualError(t, err, "must be between 1 and 100")
	got, err = PageSize(200)(200)
	require.NoError(t, err)
	assert.Equal(t, 200, got)
}
