// Package cache persists extraction results keyed by input content hash, so
// re-uploading the same file skips the model round trips entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/schedulely/timetable-extractor/internal/timetable"
)

type Config struct {
	Path       string
	TTL        time.Duration
	MaxEntries int
}

// Store is a TTL-bounded result cache backed by a single sqlite file.
type Store struct {
	db     *sql.DB
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS results (
	content_hash TEXT PRIMARY KEY,
	payload      TEXT NOT NULL,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON results (created_at);
`

// Open creates the sqlite file if needed and applies the schema.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 256
	}

	logger.Info("cache.open", "path", cfg.Path)
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	// A single writer keeps sqlite's locking out of the way.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}
	return &Store{db: db, cfg: cfg, logger: logger, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Key hashes file content into the cache key.
func Key(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for key, or (nil, nil) on miss or expiry.
func (s *Store) Get(ctx context.Context, key string) (*timetable.Result, error) {
	var payload string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM results WHERE content_hash = ?`, key,
	).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}

	if s.now().Sub(time.Unix(createdAt, 0)) > s.cfg.TTL {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM results WHERE content_hash = ?`, key)
		return nil, nil
	}

	var res timetable.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	s.logger.Debug("cache.hit", "key", key)
	return &res, nil
}

// Put stores a result and prunes the oldest rows past MaxEntries.
func (s *Store) Put(ctx context.Context, key string, res timetable.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (content_hash, payload, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		key, string(payload), s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return s.prune(ctx)
}

func (s *Store) prune(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM results WHERE content_hash NOT IN (
			SELECT content_hash FROM results ORDER BY created_at DESC LIMIT ?
		)`, s.cfg.MaxEntries)
	if err != nil {
		return fmt.Errorf("cache prune: %w", err)
	}
	return nil
}
