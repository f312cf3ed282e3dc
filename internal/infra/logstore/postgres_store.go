package logstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
)

// PostgresStore implements the attempt log and visit repository using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// MigratePostgres applies the schema through a database/sql view of pool.
func MigratePostgres(pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(db, DialectPostgres)
}

func (s *PostgresStore) LogAttempt(ctx context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO search_logs (id, username, search_time, status)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), username, normalizeTime(at), string(status))
	return err
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, username string, status profile.AttemptStatus, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE search_logs
		SET status = $1
		WHERE username = $2 AND search_time = $3
	`, string(status), username, normalizeTime(at))
	return err
}

func (s *PostgresStore) CreateVisit(ctx context.Context, userID string, at time.Time) (visitlog.Entry, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO user_logs (id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, uuid.NewString(), userID, normalizeTime(at))
	return scanVisit(row)
}

func (s *PostgresStore) UpdateVisitProfile(ctx context.Context, id, realName string, totalSolved int) (visitlog.Entry, bool, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE user_logs
		SET real_name = $1, total_solved = $2
		WHERE id = $3
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, realName, totalSolved, id)
	return scanUpdatedVisit(row)
}

func (s *PostgresStore) MarkVisitScrolled(ctx context.Context, id string, fullyScrolled bool) (visitlog.Entry, bool, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE user_logs
		SET fully_scrolled = $1
		WHERE id = $2
		RETURNING id, user_id, created_at, real_name, total_solved, fully_scrolled
	`, fullyScrolled, id)
	return scanUpdatedVisit(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVisit(row rowScanner) (visitlog.Entry, error) {
	var (
		entry    visitlog.Entry
		realName sql.NullString
		solved   sql.NullInt64
	)
	if err := row.Scan(&entry.ID, &entry.UserID, &entry.CreatedAt, &realName, &solved, &entry.FullyScrolled); err != nil {
		return visitlog.Entry{}, err
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	if realName.Valid {
		entry.RealName = realName.String
	}
	if solved.Valid {
		n := int(solved.Int64)
		entry.TotalSolved = &n
	}
	return entry, nil
}

func scanUpdatedVisit(row rowScanner) (visitlog.Entry, bool, error) {
	entry, err := scanVisit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
			return visitlog.Entry{}, false, nil
		}
		return visitlog.Entry{}, false, err
	}
	return entry, true, nil
}

var (
	_ profile.AttemptLogger = (*PostgresStore)(nil)
	_ visitlog.Repository   = (*PostgresStore)(nil)
)
