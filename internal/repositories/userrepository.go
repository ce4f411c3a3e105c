package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Totarae/linkshortener/internal/database"
	"github.com/Totarae/linkshortener/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, username, email, password, created_at`

// UserRepository хранит пользователей в PostgreSQL.
type UserRepository struct {
	DB *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser вставляет пользователя. Занятый email даёт ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	query := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3)
              RETURNING user_id, created_at`

	if err := r.DB.Pool.QueryRow(ctx, query, u.Username, u.Email, u.Password).Scan(&u.ID, &u.CreatedAt); err != nil {
		return fmt.Errorf("insert user: %w", translate(err))
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

// GetUserByEmail ищет по точному совпадению; нормализация email на стороне вызывающего.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	u, err := scanUser(r.DB.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей в порядке создания.
func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
