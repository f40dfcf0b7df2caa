package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/tap-exchangeratesapi/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/domain"
	"github.com/custodia-labs/tap-exchangeratesapi/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "checkpoints.db"

// Ensure Store implements the interface.
var _ driven.CheckpointStore = (*Store)(nil)

// Store is a SQLite-based checkpoint history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the checkpoint database in dataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("%w: empty data directory", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_checkpoints.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save appends a checkpoint. A zero CreatedAt is stamped with the current time.
func (s *Store) Save(ctx context.Context, checkpoint domain.Checkpoint) error {
	if checkpoint.Stream == "" || checkpoint.Status == "" {
		return domain.ErrInvalidInput
	}
	createdAt := checkpoint.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (run_id, stream, start_date, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, checkpoint.RunID,
		checkpoint.Stream,
		domain.FormatDate(checkpoint.State.StartDate),
		string(checkpoint.Status),
		createdAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("saving checkpoint: %w", err)
	}
	return nil
}

// Latest returns the most recent checkpoint for a stream.
func (s *Store) Latest(ctx context.Context, stream string) (*domain.Checkpoint, error) {
	list, err := s.List(ctx, stream, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &list[0], nil
}

// List returns up to limit checkpoints for a stream, newest first.
// A non-positive limit returns all of them.
func (s *Store) List(ctx context.Context, stream string, limit int) ([]domain.Checkpoint, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, stream, start_date, status, created_at
		FROM checkpoints
		WHERE stream = ?
		ORDER BY id DESC
		LIMIT ?
	`, stream, limit)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []domain.Checkpoint //nolint:prealloc // size unknown from query
	for rows.Next() {
		checkpoint, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		checkpoints = append(checkpoints, *checkpoint)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checkpoints: %w", err)
	}

	return checkpoints, nil
}

// scanCheckpoint scans a checkpoint from *sql.Rows.
func scanCheckpoint(rows *sql.Rows) (*domain.Checkpoint, error) {
	var checkpoint domain.Checkpoint
	var startDate, status, createdAt string

	if err := rows.Scan(&checkpoint.ID, &checkpoint.RunID, &checkpoint.Stream,
		&startDate, &status, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning checkpoint: %w", err)
	}

	start, err := domain.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("scanning checkpoint %d: %w", checkpoint.ID, err)
	}
	checkpoint.State = domain.SyncState{StartDate: start}
	checkpoint.Status = domain.CheckpointStatus(status)

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		checkpoint.CreatedAt = t
	}

	return &checkpoint, nil
}
