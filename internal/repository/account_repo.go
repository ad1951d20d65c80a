package repository

import (
	"database/sql"
	"fmt"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(email, passwordHash string) (int64, error) {
	result, err := r.db.Exec(
		`INSERT INTO accounts (email, password_hash) VALUES (?, ?)`,
		email,
		passwordHash,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", err)
	}
	return result.LastInsertId()
}

func (r *AccountRepository) GetByEmail(email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.QueryRow(
		`SELECT id, email, password_hash FROM accounts WHERE email = ?`,
		email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) UpdatePassword(accountID int64, passwordHash string) error {
	_, err := r.db.Exec(
		`UPDATE accounts SET password_hash = ? WHERE id = ?`,
		passwordHash, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
