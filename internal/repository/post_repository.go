package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/policy"
)

// PostFilter narrows a post listing. Nil fields are ignored.
type PostFilter struct {
	policy.Scope
	Status *domain.PostStatus
	Tag    *string
	Limit  int
	Offset int
}

// PostRepository encapsulates post persistence and the post/category links.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// Update writes the content fields of post. Status is left untouched.
	Update(ctx context.Context, post *domain.Post) error
	// UpdateStatus moves post id from one status to another and returns
	// ErrStale when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.PostStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, filter PostFilter) ([]domain.Post, int, error)
	ReplaceCategories(ctx context.Context, postID string, categoryIDs []string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var postColumns = []string{
	"p.id", "p.title", "p.content", "p.status", "p.tags", "p.author_id",
	"u.username", "u.fullname", "p.created_at", "p.updated_at",
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository instantiates the Postgres repository.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

// Create inserts the post row and its category links. Callers needing
// atomicity wrap it in Transactor.WithinTx.
func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, content, status, tags, author_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	if err := conn(ctx, r.pool).QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.Status,
		tags,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return classify(err)
	}
	return r.insertLinks(ctx, post.ID, post.CategoryIDs())
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title=$1, content=$2, tags=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		post.Title,
		post.Content,
		tags,
		post.ID,
	).Scan(&post.UpdatedAt)
	return classify(err)
}

func (r *postRepository) UpdateStatus(ctx context.Context, id string, from, to domain.PostStatus) error {
	db := conn(ctx, r.pool)
	cmd, err := db.Exec(ctx,
		`UPDATE posts SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		string(to), id, string(from))
	if err != nil {
		return classify(err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id=$1)`, id).Scan(&exists); err != nil {
		return classify(err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStale
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query, args, err := psql.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build post query: %w", err)
	}

	post, err := scanPost(conn(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, classify(err)
	}
	posts := []domain.Post{*post}
	if err := r.attachCategories(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]domain.Post, int, error) {
	countSQL, countArgs, err := buildPostCountQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	listSQL, listArgs, err := buildPostListQuery(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}
	rows, err := conn(ctx, r.pool).Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	if err := r.attachCategories(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ReplaceCategories(ctx context.Context, postID string, categoryIDs []string) error {
	if _, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM post_categories WHERE post_id=$1`, postID); err != nil {
		return classify(err)
	}
	return r.insertLinks(ctx, postID, categoryIDs)
}

func (r *postRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	const query = `SELECT COUNT(DISTINCT post_id) FROM post_categories WHERE category_id=$1`
	var count int
	if err := conn(ctx, r.pool).QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, classify(err)
	}
	return count, nil
}

func (r *postRepository) insertLinks(ctx context.Context, postID string, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	builder := psql.Insert("post_categories").Columns("post_id", "category_id").Suffix("ON CONFLICT DO NOTHING")
	for _, id := range categoryIDs {
		builder = builder.Values(postID, id)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build link insert: %w", err)
	}
	if _, err := conn(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return classify(err)
	}
	return nil
}

// attachCategories loads the categories of every post in one round trip.
func (r *postRepository) attachCategories(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	index := make(map[string]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
		index[posts[i].ID] = i
		posts[i].Categories = []domain.Category{}
	}

	const query = `
        SELECT pc.post_id, c.id, c.name
        FROM post_categories pc
        JOIN categories c ON c.id = pc.category_id
        WHERE pc.post_id = ANY($1::uuid[])
        ORDER BY c.name`

	rows, err := conn(ctx, r.pool).Query(ctx, query, ids)
	if err != nil {
		return classify(err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		var category domain.Category
		if err := rows.Scan(&postID, &category.ID, &category.Name); err != nil {
			return err
		}
		if i, ok := index[postID]; ok {
			posts[i].Categories = append(posts[i].Categories, category)
		}
	}
	return rows.Err()
}

func buildPostListQuery(filter PostFilter) (string, []any, error) {
	builder := applyPostFilter(
		psql.Select(postColumns...).From("posts p").Join("users u ON u.id = p.author_id"),
		filter,
	).OrderBy("p.created_at DESC", "p.id DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	return builder.ToSql()
}

func buildPostCountQuery(filter PostFilter) (string, []any, error) {
	return applyPostFilter(psql.Select("COUNT(*)").From("posts p"), filter).ToSql()
}

func applyPostFilter(builder sq.SelectBuilder, filter PostFilter) sq.SelectBuilder {
	if filter.AuthorID != nil {
		builder = builder.Where(sq.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.OwnerOrPublic != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"p.author_id": *filter.OwnerOrPublic},
			sq.Eq{"p.status": string(domain.PostStatusPublic)},
		})
	}
	if filter.PublicOnly {
		builder = builder.Where(sq.Eq{"p.status": string(domain.PostStatusPublic)})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"p.status": string(*filter.Status)})
	}
	if filter.Tag != nil {
		builder = builder.Where(sq.Expr("? = ANY(p.tags)", *filter.Tag))
	}
	return builder
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var author domain.PostAuthor
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Status,
		&post.Tags,
		&post.AuthorID,
		&author.Username,
		&author.Fullname,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	author.ID = post.AuthorID
	post.Author = &author
	return &post, nil
}
