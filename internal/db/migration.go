package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
)

type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{
		version: "000_create_accounts",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_password_reset_tokens",
		sql: `
			CREATE TABLE IF NOT EXISTS password_reset_tokens (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				account_id BIGINT UNSIGNED NOT NULL,
				token      VARCHAR(10) NOT NULL,
				expires_at DATETIME NOT NULL,
				used       TINYINT NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_account_state",
		sql: `
			CREATE TABLE IF NOT EXISTS account_state (
				account_id  BIGINT UNSIGNED NOT NULL,
				record_key  VARCHAR(50) NOT NULL,
				payload     JSON NOT NULL,
				updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				PRIMARY KEY (account_id, record_key),
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "003_create_workout_logs",
		sql: `
			CREATE TABLE IF NOT EXISTS workout_logs (
				id               VARCHAR(36) PRIMARY KEY,
				account_id       BIGINT UNSIGNED NOT NULL,
				date             DATETIME NOT NULL,
				day_number       TINYINT NOT NULL,
				calories_burned  INT NOT NULL,
				duration_minutes INT NOT NULL,
				exercises        JSON NOT NULL,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "004_create_exercises",
		sql: `
			CREATE TABLE IF NOT EXISTS exercises (
				id         VARCHAR(36) PRIMARY KEY,
				account_id BIGINT UNSIGNED NOT NULL,
				name       VARCHAR(100) NOT NULL,
				category   VARCHAR(50) NOT NULL,
				met        DOUBLE NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
}

func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(db, m); err != nil {
			return err
		}

		log.Printf("applied migration: %s", m.version)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

func executeMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range strings.Split(m.sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}
