package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

// WorkoutLogRepository is the append-only workout history. Logs are never
// edited; reads come back newest first.
type WorkoutLogRepository struct {
	db *sql.DB
}

func NewWorkoutLogRepository(db *sql.DB) *WorkoutLogRepository {
	return &WorkoutLogRepository{db: db}
}

func (r *WorkoutLogRepository) Create(accountID int64, log *domain.WorkoutLog) error {
	exercises, err := json.Marshal(log.ExercisesCompleted)
	if err != nil {
		return fmt.Errorf("failed to encode exercises: %w", err)
	}
	_, err = r.db.Exec(
		`INSERT INTO workout_logs (id, account_id, date, day_number, calories_burned, duration_minutes, exercises)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID, accountID, log.Date, log.DayNumber, log.CaloriesBurned, log.DurationMinutes, exercises,
	)
	if err != nil {
		return fmt.Errorf("failed to create workout log: %w", err)
	}
	return nil
}

func (r *WorkoutLogRepository) ListByAccount(accountID int64) ([]domain.WorkoutLog, error) {
	rows, err := r.db.Query(
		`SELECT id, date, day_number, calories_burned, duration_minutes, exercises
		 FROM workout_logs
		 WHERE account_id = ?
		 ORDER BY date DESC, id DESC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workout logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.WorkoutLog
	for rows.Next() {
		var log domain.WorkoutLog
		var exercises []byte
		if err := rows.Scan(&log.ID, &log.Date, &log.DayNumber, &log.CaloriesBurned, &log.DurationMinutes, &exercises); err != nil {
			return nil, fmt.Errorf("failed to scan workout log: %w", err)
		}
		if err := json.Unmarshal(exercises, &log.ExercisesCompleted); err != nil {
			return nil, fmt.Errorf("failed to decode exercises: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *WorkoutLogRepository) Delete(accountID int64, id string) (bool, error) {
	result, err := r.db.Exec(
		`DELETE FROM workout_logs WHERE account_id = ? AND id = ?`,
		accountID, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete workout log: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete workout log: %w", err)
	}
	return n > 0, nil
}
