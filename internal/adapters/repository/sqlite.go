package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gitscout/gitscout/internal/domain/model"
	"github.com/gitscout/gitscout/pkg/metrics"
)

// Table names for persisted documents.
const (
	profilesTable    = "standard_profiles"
	comparisonsTable = "comparisons"
)

// SQLiteStore implements Store on a single SQLite database. Each row keeps
// the full entity as a JSON document alongside indexed scalar columns used
// for lookups and ordering.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ Store = (*SQLiteStore)(nil) // compile-time check

// NewSQLiteStore opens (or creates) the database at path and ensures the
// table schemas exist.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		path: path,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %w", ErrOpen, s.path, err)
	}
	// A single open connection avoids "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: connect %q: %w", ErrOpen, s.path, err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create tables: %w", ErrOpen, err)
	}

	s.db = db
	return s, nil
}

func createTables(db *sql.DB) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				created_at TEXT NOT NULL,
				document TEXT NOT NULL
			);
		`, profilesTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_profiles_owner ON %s (owner_id, created_at);`, profilesTable),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				owner_id TEXT NOT NULL,
				candidate_username TEXT NOT NULL,
				created_at TEXT NOT NULL,
				document TEXT NOT NULL
			);
		`, comparisonsTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_comparisons_owner ON %s (owner_id, created_at);`, comparisonsTable),
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateProfile assigns an id and created_at and persists the profile.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	profile.ID = uuid.NewString()
	profile.CreatedAt = s.now().UTC()

	doc, err := json.Marshal(profile)
	if err != nil {
		return model.StandardProfile{}, fmt.Errorf("marshal profile: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, owner_id, created_at, document) VALUES (?, ?, ?, ?)`, profilesTable)
	if _, err := s.db.ExecContext(ctx, query, profile.ID, profile.OwnerID, profile.CreatedAt.Format(time.RFC3339Nano), string(doc)); err != nil {
		return model.StandardProfile{}, fmt.Errorf("insert profile: %w", err)
	}

	return profile, nil
}

// GetProfile returns ErrNotFound for unknown ids.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (model.StandardProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`SELECT document FROM %s WHERE id = ?`, profilesTable)

	var doc string
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StandardProfile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return model.StandardProfile{}, fmt.Errorf("query profile: %w", err)
	}

	var profile model.StandardProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return model.StandardProfile{}, fmt.Errorf("unmarshal profile %s: %w", id, err)
	}
	return profile, nil
}

// ListProfiles returns the owner's profiles ordered newest-first.
func (s *SQLiteStore) ListProfiles(ctx context.Context, ownerID string) ([]model.StandardProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`SELECT document FROM %s WHERE owner_id = ? ORDER BY created_at DESC`, profilesTable)

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.StandardProfile
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		var profile model.StandardProfile
		if err := json.Unmarshal([]byte(doc), &profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

// UpdateProfile replaces the stored document, preserving id, owner and
// created_at from the existing row.
func (s *SQLiteStore) UpdateProfile(ctx context.Context, profile model.StandardProfile) (model.StandardProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	existing, err := s.GetProfile(ctx, profile.ID)
	if err != nil {
		return model.StandardProfile{}, err
	}
	profile.OwnerID = existing.OwnerID
	profile.CreatedAt = existing.CreatedAt

	doc, err := json.Marshal(profile)
	if err != nil {
		return model.StandardProfile{}, fmt.Errorf("marshal profile: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET document = ? WHERE id = ?`, profilesTable)
	if _, err := s.db.ExecContext(ctx, query, string(doc), profile.ID); err != nil {
		return model.StandardProfile{}, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// DeleteProfile returns ErrNotFound for unknown ids.
func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, profilesTable)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// CreateComparison assigns an id and created_at and persists the record.
func (s *SQLiteStore) CreateComparison(ctx context.Context, record model.ComparisonRecord) (model.ComparisonRecord, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	record.ID = uuid.NewString()
	record.CreatedAt = s.now().UTC()

	doc, err := json.Marshal(record)
	if err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("marshal comparison: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, owner_id, candidate_username, created_at, document) VALUES (?, ?, ?, ?, ?)`, comparisonsTable)
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.OwnerID, record.CandidateUsername, record.CreatedAt.Format(time.RFC3339Nano), string(doc)); err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("insert comparison: %w", err)
	}
	return record, nil
}

// GetComparison returns ErrNotFound for unknown ids.
func (s *SQLiteStore) GetComparison(ctx context.Context, id string) (model.ComparisonRecord, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`SELECT document FROM %s WHERE id = ?`, comparisonsTable)

	var doc string
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ComparisonRecord{}, fmt.Errorf("comparison %s: %w", id, ErrNotFound)
		}
		return model.ComparisonRecord{}, fmt.Errorf("query comparison: %w", err)
	}

	var record model.ComparisonRecord
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("unmarshal comparison %s: %w", id, err)
	}
	return record, nil
}

// ListComparisons returns the owner's records ordered newest-first.
func (s *SQLiteStore) ListComparisons(ctx context.Context, ownerID string) ([]model.ComparisonRecord, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`SELECT document FROM %s WHERE owner_id = ? ORDER BY created_at DESC`, comparisonsTable)

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query comparisons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ComparisonRecord
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan comparison: %w", err)
		}
		var record model.ComparisonRecord
		if err := json.Unmarshal([]byte(doc), &record); err != nil {
			return nil, fmt.Errorf("unmarshal comparison: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return records, nil
}

// DeleteComparison returns ErrNotFound for unknown ids.
func (s *SQLiteStore) DeleteComparison(ctx context.Context, id string) error {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, comparisonsTable)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete comparison: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comparison %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
