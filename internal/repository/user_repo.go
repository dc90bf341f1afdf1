package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taskhub/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// UserRepository reads and writes user rows.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and returns the stored row. The unique index on
// email is the only arbiter of duplicates; there is no pre-check, so two
// concurrent registrations cannot race past each other.
func (r *UserRepository) Create(ctx context.Context, email, hashedPassword string) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (email, hashed_password) VALUES ($1, $2) RETURNING id, email, hashed_password",
		email, hashedPassword,
	).Scan(&u.ID, &u.Email, &u.HashedPassword)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// FindByEmail returns the user with the given email or ErrUserNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, hashed_password FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
