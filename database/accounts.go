package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"atrium/auth"
	"atrium/models"
)

const (
	accountsTable      = "auth.accounts"
	columnEmail        = "email"
	columnPasswordHash = "password_hash"

	pgUniqueViolation = "23505"
)

// CreateAccount stores a new identity account. Returns auth.ErrEmailTaken
// when the email is already registered.
func (db *DB) CreateAccount(ctx context.Context, account models.Account) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
	`, accountsTable, columnUserID, columnEmail, columnPasswordHash)

	_, err := db.Pool.Exec(ctx, query, account.UserID, account.Email, account.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	log.Printf("Created account for %s", account.UserID)
	return nil
}

// FindAccountByEmail looks up an account by its email. Returns
// auth.ErrNoSuchEmail when no account exists.
func (db *DB) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`, columnUserID, columnEmail, columnPasswordHash, accountsTable, columnEmail)

	var account models.Account
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&account.UserID,
		&account.Email,
		&account.PasswordHash,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, auth.ErrNoSuchEmail
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}
