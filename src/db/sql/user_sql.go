package db

import (
	"context"
	"errors"
	"fmt"

	"budgetwise-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Directory resolves user and category identifiers against Postgres.
// Lookups return (nil, nil) when the identifier is unknown.
type Directory struct {
	pool *pgxpool.Pool
}

func NewDirectory(pool *pgxpool.Pool) *Directory {
	return &Directory{pool: pool}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, created_at`

func (d *Directory) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return d.findUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (d *Directory) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.findUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (d *Directory) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.findUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (d *Directory) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := d.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func (d *Directory) CreateUser(ctx context.Context, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	query := `
		INSERT INTO users (first_name, last_name, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var userID int64
	err := d.pool.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Username,
		req.Email,
		hashedPassword,
	).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.RegisterResponse{
		ID:       userID,
		Email:    req.Email,
		Username: req.Username,
	}, nil
}
