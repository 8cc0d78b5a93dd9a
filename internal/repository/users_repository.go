// Package repository contains the PostgreSQL data access layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthassistant/hub/internal/models"
)

// ErrUserNotFound is returned when no user row matches the given identity.
var ErrUserNotFound = errors.New("user not found")

// UsersRepository handles data access for the users table.
type UsersRepository struct {
	db *pgxpool.Pool
}

// NewUsersRepository creates a new users repository.
func NewUsersRepository(db *pgxpool.Pool) *UsersRepository {
	return &UsersRepository{db: db}
}

// GetByName returns the user with the given name. Returns ErrUserNotFound
// when no such user exists.
func (r *UsersRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx,
		`SELECT id, name, role, password_hash, created_at FROM users WHERE name = $1`,
		name,
	).Scan(&user.ID, &user.Name, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("get user by name: %w", err)
	}

	return &user, nil
}

// GetByID returns the user with the given ID. Returns ErrUserNotFound when no
// such user exists.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx,
		`SELECT id, name, role, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Name, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// Create inserts a user and returns the stored row. Role must be one of
// models.RoleUser or models.RoleAdmin; the table constraint enforces it.
func (r *UsersRepository) Create(ctx context.Context, name, role, passwordHash string) (*models.User, error) {
	var user models.User

	err := r.db.QueryRow(ctx, `
		INSERT INTO users (name, role, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, role, password_hash, created_at`,
		name, role, passwordHash,
	).Scan(&user.ID, &user.Name, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}
