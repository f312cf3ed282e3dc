package logstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
)

// OpenSQLite opens the database file at path, tunes it and applies the
// schema.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}
	if err := Migrate(db, DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteStore implements the attempt log and visit repository on SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) LogAttempt(ctx context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_logs (id, username, search_time, status)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), username, normalizeTime(at), string(status))
	return err
}

func (s *SQLiteStore) UpdateStatus(ctx context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE search_logs
		SET status = ?
		WHERE username = ? AND search_time = ?
	`, string(status), username, normalizeTime(at))
	return err
}

// SearchStatus returns the status of the attempt logged for username at.
func (s *SQLiteStore) SearchStatus(ctx context.Context, username string, at time.Time) (profile.AttemptStatus, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT status FROM search_logs WHERE username = ? AND search_time = ?
	`, username, normalizeTime(at)).Scan(&status)
	return profile.AttemptStatus(status), err
}

func (s *SQLiteStore) CreateVisit(ctx context.Context, userID string, at time.Time) (visitlog.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO user_logs (id, user_id, created_at)
		VALUES (?, ?, ?)
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, uuid.NewString(), userID, normalizeTime(at))
	return scanVisit(row)
}

func (s *SQLiteStore) UpdateVisitProfile(ctx context.Context, id, realName string, totalSolved int) (visitlog.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE user_logs
		SET real_name = ?, total_solved = ?
		WHERE id = ?
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, realName, totalSolved, id)
	return scanUpdatedVisit(row)
}

func (s *SQLiteStore) MarkVisitScrolled(ctx context.Context, id string, fullyScrolled bool) (visitlog.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE user_logs
		SET fully_scrolled = ?
		WHERE id = ?
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, fullyScrolled, id)
	return scanUpdatedVisit(row)
}

var (
	_ profile.AttemptLogger = (*SQLiteStore)(nil)
	_ visitlog.Repository   = (*SQLiteStore)(nil)
)
