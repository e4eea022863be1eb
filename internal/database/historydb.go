package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/marcosnunesmbs/portfolio/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "portfolio.db"

// createdAtLayout is fixed-width so that created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB stores trace comparisons in SQLite.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS comparisons (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		before_path TEXT NOT NULL,
		after_path TEXT NOT NULL,
		before_digest TEXT NOT NULL,
		after_digest TEXT NOT NULL,
		before_bytes INTEGER NOT NULL DEFAULT 0,
		after_bytes INTEGER NOT NULL DEFAULT 0,
		improvement REAL,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_comparisons_created ON comparisons(created_at);
	CREATE INDEX IF NOT EXISTS idx_comparisons_digests ON comparisons(before_digest, after_digest);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveComparison stores rec. A missing ID or CreatedAt is filled in and
// written back to rec.
func (hdb *HistoryDB) SaveComparison(ctx context.Context, rec *model.HistoryRecord) error {
	if rec.Summary == nil {
		return errors.New("failed to save comparison: summary is nil")
	}

	summaryJSON, err := json.Marshal(rec.Summary)
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	// A zero baseline leaves the improvement NULL.
	improvement := sql.NullFloat64{
		Float64: float64(rec.Summary.Duration.Improvement),
		Valid:   rec.Summary.Duration.Improvement.IsFinite(),
	}

	query := `
	INSERT INTO comparisons (id, created_at, before_path, after_path, before_digest, after_digest,
		before_bytes, after_bytes, improvement, summary_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		rec.ID,
		rec.CreatedAt.UTC().Format(createdAtLayout),
		rec.BeforePath,
		rec.AfterPath,
		rec.BeforeDigest,
		rec.AfterDigest,
		rec.Summary.BeforeFileBytes,
		rec.Summary.AfterFileBytes,
		improvement,
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save comparison: %w", err)
	}

	return nil
}

// ListComparisons returns the most recent comparisons, newest first.
// A non-positive limit returns all of them.
func (hdb *HistoryDB) ListComparisons(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	query := `
	SELECT id, created_at, before_path, after_path, before_digest, after_digest, before_bytes, after_bytes, summary_json
	FROM comparisons
	ORDER BY created_at DESC, rowid DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comparisons: %w", err)
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// GetComparison returns the comparison with the given ID, or ErrNotFound.
func (hdb *HistoryDB) GetComparison(ctx context.Context, id string) (*model.HistoryRecord, error) {
	query := `
	SELECT id, created_at, before_path, after_path, before_digest, after_digest, before_bytes, after_bytes, summary_json
	FROM comparisons
	WHERE id = ?
	`

	rec, err := scanRecord(hdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var createdAt, summaryJSON string
	var beforeBytes, afterBytes int64

	err := row.Scan(
		&rec.ID,
		&createdAt,
		&rec.BeforePath,
		&rec.AfterPath,
		&rec.BeforeDigest,
		&rec.AfterDigest,
		&beforeBytes,
		&afterBytes,
		&summaryJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comparison: %w", err)
	}

	rec.CreatedAt = parseTimestamp(createdAt)

	var summary model.TraceSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary of %s: %w", rec.ID, err)
	}
	summary.BeforePath = rec.BeforePath
	summary.AfterPath = rec.AfterPath
	summary.BeforeFileBytes = beforeBytes
	summary.AfterFileBytes = afterBytes
	rec.Summary = &summary

	return &rec, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp tries each known format and returns the zero time when none
// matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
