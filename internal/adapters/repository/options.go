package repository

import "time"

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the timestamp source. Used in tests to make
// created_at ordering deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}
