package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Beawareofme/warehouse-frontend/internal/domain"
	"github.com/Beawareofme/warehouse-frontend/internal/port"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// SQLStore handles client storage and the navigation log on PostgreSQL or
// SQLite. Queries are written with $N placeholders and rebound for SQLite.
type SQLStore struct {
	db     *sql.DB
	driver string
}

var (
	_ port.ClientStorage      = (*SQLStore)(nil)
	_ port.NavigationLogStore = (*SQLStore)(nil)
)

// NewSQLStore opens a connection and returns a store instance.
func NewSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", port.ErrUnknownStorage, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driver == DriverSQLite {
		// One writer at a time avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Driver returns the database/sql driver name in use.
func (s *SQLStore) Driver() string {
	return s.driver
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS client_storage (
		client_id  TEXT NOT NULL,
		item_key   TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (client_id, item_key)
	)`,
	`CREATE TABLE IF NOT EXISTS navigation_logs (
		id         TEXT PRIMARY KEY,
		client_id  TEXT NOT NULL,
		user_id    TEXT NOT NULL DEFAULT '',
		method     TEXT NOT NULL,
		path       TEXT NOT NULL,
		status     INTEGER NOT NULL,
		outcome    TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_navigation_logs_created_at ON navigation_logs (created_at)`,
}

// Migrate creates the tables the store needs. It is idempotent.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// rebind rewrites $N placeholders into SQLite's ?N form.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverSQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

// --- Client storage ---

func (s *SQLStore) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	query := s.rebind(`SELECT value FROM client_storage WHERE client_id = $1 AND item_key = $2`)

	var value string
	err := s.db.QueryRowContext(ctx, query, clientID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, clientID, key, value string) error {
	query := s.rebind(`
		INSERT INTO client_storage (client_id, item_key, value, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (client_id, item_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = CURRENT_TIMESTAMP`)

	if _, err := s.db.ExecContext(ctx, query, clientID, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := make([]string, len(keys))
	args := make([]interface{}, 0, len(keys)+1)
	args = append(args, clientID)
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, k)
	}
	query := s.rebind(`DELETE FROM client_storage WHERE client_id = $1 AND item_key IN (` +
		strings.Join(placeholders, ", ") + `)`)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove keys: %w", err)
	}
	return nil
}

// --- Navigation log ---

// WriteNavigation implements port.NavigationLogStore.
func (s *SQLStore) WriteNavigation(ctx context.Context, entry domain.NavigationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Details == "" {
		entry.Details = "{}"
	}

	query := s.rebind(`INSERT INTO navigation_logs (id, client_id, user_id, method, path, status, outcome, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.ClientID, entry.UserID, entry.Method, entry.Path,
		entry.Status, entry.Outcome, entry.Details, entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("write navigation: %w", err)
	}
	return nil
}

// ListNavigation returns recent navigation records with an optional outcome filter.
func (s *SQLStore) ListNavigation(ctx context.Context, limit int, outcome string) ([]domain.NavigationLog, error) {
	query := `SELECT id, client_id, user_id, method, path, status, outcome, details, created_at
	          FROM navigation_logs`
	args := []interface{}{}
	argIdx := 1

	if outcome != "" {
		query += fmt.Sprintf(" WHERE outcome = $%d", argIdx)
		args = append(args, outcome)
		argIdx++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list navigation: %w", err)
	}
	defer rows.Close()

	logs := []domain.NavigationLog{}
	for rows.Next() {
		var l domain.NavigationLog
		if err := rows.Scan(
			&l.ID, &l.ClientID, &l.UserID, &l.Method, &l.Path,
			&l.Status, &l.Outcome, &l.Details, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan navigation: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
