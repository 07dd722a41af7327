package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/talentscout/intake/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS screenings (
		session_id TEXT PRIMARY KEY,
		info_json TEXT NOT NULL,
		answers_json TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_screenings_created ON screenings(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveScreening stores a completed screening record, retrying briefly on
// SQLITE_BUSY since completions from parallel sessions can collide.
func (s *SQLiteStore) SaveScreening(ctx context.Context, rec *domain.ScreeningRecord) error {
	infoJSON, err := json.Marshal(rec.Info)
	if err != nil {
		return fmt.Errorf("marshal candidate info: %w", err)
	}
	answersJSON, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO screenings (session_id, info_json, answers_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			info_json = excluded.info_json,
			answers_json = excluded.answers_json`

	maxRetries := 3
	baseDelay := 50 * time.Millisecond
	for i := 0; i < maxRetries; i++ {
		_, err = s.db.ExecContext(ctx, query, rec.SessionID, string(infoJSON), string(answersJSON), createdAt.Unix())
		if err == nil {
			return nil
		}
		if isBusy(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("Screening save hit SQLITE_BUSY, retrying",
				"session_id", rec.SessionID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		break
	}
	return fmt.Errorf("save screening %s: %w", rec.SessionID, err)
}

// GetScreening retrieves a screening by session id.
func (s *SQLiteStore) GetScreening(ctx context.Context, sessionID string) (*domain.ScreeningRecord, error) {
	query := `SELECT session_id, info_json, answers_json, created_at FROM screenings WHERE session_id = ?`
	row := s.db.QueryRowContext(ctx, query, sessionID)

	rec, err := scanScreening(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan screening row: %w", err)
	}
	return rec, nil
}

// ListScreenings returns up to limit records, newest first.
func (s *SQLiteStore) ListScreenings(ctx context.Context, limit int) ([]*domain.ScreeningRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT session_id, info_json, answers_json, created_at FROM screenings ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query screenings: %w", err)
	}
	defer rows.Close()

	var records []*domain.ScreeningRecord
	for rows.Next() {
		rec, err := scanScreening(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screenings: %w", err)
	}
	return records, nil
}

func scanScreening(scan func(dest ...any) error) (*domain.ScreeningRecord, error) {
	var rec domain.ScreeningRecord
	var infoJSON, answersJSON string
	var createdAt int64

	if err := scan(&rec.SessionID, &infoJSON, &answersJSON, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(infoJSON), &rec.Info); err != nil {
		return nil, fmt.Errorf("unmarshal candidate info: %w", err)
	}
	if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	rec.CreatedAt = time.Unix(createdAt, 0)
	return &rec, nil
}

// isBusy checks for the SQLite concurrency errors that warrant a retry.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
