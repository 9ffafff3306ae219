package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
)

// CategoryRepository manages the admin-curated taxonomy.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the Postgres repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	return classify(conn(ctx, r.pool).QueryRow(ctx, query, category.Name).Scan(&category.ID))
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `UPDATE categories SET name=$1 WHERE id=$2`, category.Name, category.ID)
	if err != nil {
		return classify(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name FROM categories WHERE id=$1`, id).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, classify(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT id, name FROM categories WHERE name=$1`, name).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, classify(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT id, name FROM categories WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.query(ctx, `SELECT id, name FROM categories ORDER BY name`)
}

func (r *categoryRepository) query(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}
