package store

import (
	"database/sql"
	"errors"
	"time"
)

// BestTimes keeps one best completion time per difficulty key. It
// implements the game package's BestStore.
type BestTimes struct {
	s *Store
}

func NewBestTimes(db *sql.DB) (*BestTimes, error) {
	s, err := New(db, "best_times")
	if err != nil {
		return nil, err
	}
	return &BestTimes{s: s}, nil
}

func (b *BestTimes) Best(key string) (time.Duration, bool, error) {
	var d time.Duration
	err := b.s.Get(key, &d)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}

// Record stores d under key if it beats the current best, reporting
// whether it did. A missing record always loses to d.
func (b *BestTimes) Record(key string, d time.Duration) (bool, error) {
	prev, ok, err := b.Best(key)
	if err != nil {
		return false, err
	}
	if ok && prev <= d {
		return false, nil
	}
	if err := b.s.Set(key, d); err != nil {
		return false, err
	}
	return true, nil
}
