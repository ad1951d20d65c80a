package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Persisted per-account record keys. Each record is an opaque JSON payload
// replaced wholesale on every change; there is no schema versioning.
const (
	RecordProfile  = "profile"
	RecordRestDays = "rest_days"
)

// StateRepository stores per-account key/value records with full-record
// overwrite semantics.
type StateRepository struct {
	db *sql.DB
}

func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Save(accountID int64, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", key, err)
	}
	_, err = r.db.Exec(
		`INSERT INTO account_state (account_id, record_key, payload)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
		accountID, key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s record: %w", key, err)
	}
	return nil
}

// Load decodes the record into out. Returns false with no error when the
// record has never been written.
func (r *StateRepository) Load(accountID int64, key string, out any) (bool, error) {
	var data []byte
	err := r.db.QueryRow(
		`SELECT payload FROM account_state WHERE account_id = ? AND record_key = ?`,
		accountID, key,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s record: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s record: %w", key, err)
	}
	return true, nil
}
