package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidmar/site-api/internal/core/domain"
)

// UserRepository implements ports.AuthRepository using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByEmail looks up exactly one user by normalized email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `
		SELECT id, email, name, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, domain.NormalizeEmail(email)).Scan(
		(*int64)(&u.ID),
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// Create inserts a user. The email is normalized before it is stored.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	created := *user
	created.Email = domain.NormalizeEmail(user.Email)

	err := r.pool.QueryRow(ctx, query,
		created.Email,
		created.Name,
		created.PasswordHash,
		created.Role,
	).Scan((*int64)(&created.ID), &created.CreatedAt)
	if err != nil {
		if isDuplicateError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}
