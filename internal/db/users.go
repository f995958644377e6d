package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles user database operations.
type UserRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a new user. Returns ErrConflict if the nickname is taken.
func (r *UserRepository) Create(ctx context.Context, nickname string) (*User, error) {
	query := `
		INSERT INTO users (nickname)
		VALUES ($1)
		RETURNING id, nickname
	`
	var user User
	err := r.pool.QueryRow(ctx, query, nickname).Scan(&user.ID, &user.Nickname)
	if err != nil {
		return nil, classify("inserting user", err)
	}
	return &user, nil
}

// List retrieves all users.
func (r *UserRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT id, nickname FROM users ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Nickname); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx, `SELECT id, nickname FROM users WHERE id = $1`, id)
}

// GetByNickname retrieves a user by nickname.
func (r *UserRepository) GetByNickname(ctx context.Context, nickname string) (*User, error) {
	return r.getBy(ctx, `SELECT id, nickname FROM users WHERE nickname = $1`, nickname)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Nickname)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &user, nil
}

// Delete removes a user and, through the foreign key, their completions.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
