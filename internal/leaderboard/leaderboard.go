// Package leaderboard keeps the ranked high score list shared by every
// session and persists it through a Store.
package leaderboard

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// MinScore is the score a run must exceed to be recorded.
const MinScore = 100

// DefaultLimit is the number of entries kept when no limit is given.
const DefaultLimit = 100

// Entry is one recorded run.
type Entry struct {
	Player    string    `msgpack:"player"`
	Score     int       `msgpack:"score"`
	Destroyed int       `msgpack:"destroyed"`
	Victory   bool      `msgpack:"victory"`
	At        time.Time `msgpack:"at"`
	Seq       uint64    `msgpack:"seq"` // submission order; earlier wins a tie
}

// Store loads and saves the full entry list.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Board is a ranked score list safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	entries []Entry // sorted best first
	limit   int
	seq     uint64
	store   Store
}

// New creates a board backed by store, loading what it already holds. A
// nil store keeps scores in memory only.
func New(store Store, limit int) (*Board, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	b := &Board{limit: limit, store: store}
	if store == nil {
		return b, nil
	}

	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("leaderboard: load: %w", err)
	}
	slices.SortStableFunc(entries, compare)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	b.entries = entries
	for _, e := range entries {
		b.seq = max(b.seq, e.Seq)
	}
	return b, nil
}

// compare orders by score descending, then by submission order.
func compare(a, b Entry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	switch {
	case a.Seq < b.Seq:
		return -1
	case a.Seq > b.Seq:
		return 1
	}
	return 0
}

// Submit records e and returns its 1-based rank. Runs at or below MinScore
// are ranked but not recorded. The rank is valid even when saving fails.
func (b *Board) Submit(e Entry) (int, error) {
	e.Player = strings.TrimSpace(e.Player)
	if e.Player == "" {
		e.Player = "anonymous"
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if e.Score <= MinScore {
		return b.rankLocked(e.Score), nil
	}

	b.seq++
	e.Seq = b.seq
	i, _ := slices.BinarySearchFunc(b.entries, e, compare)
	b.entries = slices.Insert(b.entries, i, e)
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}

	if b.store != nil {
		if err := b.store.Save(b.entries); err != nil {
			return i + 1, fmt.Errorf("leaderboard: save: %w", err)
		}
	}
	return i + 1, nil
}

// Top returns up to n best entries.
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n = min(max(n, 0), len(b.entries))
	return slices.Clone(b.entries[:n])
}

// Rank returns the 1-based position a new run with score would take.
func (b *Board) Rank(score int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rankLocked(score)
}

// rankLocked counts entries that beat score. Ties go to the earlier run.
func (b *Board) rankLocked(score int) int {
	i, _ := slices.BinarySearchFunc(b.entries, score, func(e Entry, s int) int {
		if e.Score >= s {
			return -1
		}
		return 1
	})
	return i + 1
}

// Len returns the number of recorded entries.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
