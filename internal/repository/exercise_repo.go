package repository

import (
	"database/sql"
	"fmt"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

// ExerciseRepository stores each account's exercise catalog.
type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(accountID int64, e *domain.Exercise) error {
	_, err := r.db.Exec(
		`INSERT INTO exercises (id, account_id, name, category, met) VALUES (?, ?, ?, ?, ?)`,
		e.ID, accountID, e.Name, e.Category, e.MET,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

func (r *ExerciseRepository) ListByAccount(accountID int64) ([]domain.Exercise, error) {
	rows, err := r.db.Query(
		`SELECT id, name, category, met FROM exercises WHERE account_id = ? ORDER BY created_at ASC, id ASC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var e domain.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MET); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) CountByAccount(accountID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM exercises WHERE account_id = ?`, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count exercises: %w", err)
	}
	return count, nil
}

func (r *ExerciseRepository) Delete(accountID int64, id string) (bool, error) {
	result, err := r.db.Exec(
		`DELETE FROM exercises WHERE account_id = ? AND id = ?`,
		accountID, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete exercise: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete exercise: %w", err)
	}
	return n > 0, nil
}
