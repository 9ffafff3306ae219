package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/blog-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, email, password_hash, fullname, dob, description, role, account_status, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, fullname, dob, description, role, account_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Fullname,
		user.DOB,
		user.Description,
		user.Role,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return classify(err)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password_hash=$2, fullname=$3, dob=$4, description=$5,
            role=$6, account_status=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`

	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Fullname,
		user.DOB,
		user.Description,
		user.Role,
		user.Status,
		user.ID,
	).Scan(&user.UpdatedAt)
	return classify(err)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return classify(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := conn(ctx, r.pool).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, classify(err)
	}
	return total, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(conn(ctx, r.pool).QueryRow(ctx, query, arg))
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Fullname,
		&user.DOB,
		&user.Description,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
