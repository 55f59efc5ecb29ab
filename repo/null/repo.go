// Package null provides an in-memory repository suitable for tests and
// for running the bot without persistent history.
package null

import (
	"context"
	"sync"
	"time"

	"github.com/mktierney/rolecall"
)

type Repository struct {
	mu      sync.Mutex
	Entries []rolecall.HistoryEntry
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Record(ctx context.Context, entry rolecall.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Entries = append(r.Entries, entry)
	return nil
}

func (r *Repository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []rolecall.HistoryEntry
	var pruned int64
	for _, entry := range r.Entries {
		if entry.At.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, entry)
	}
	r.Entries = kept
	return pruned, nil
}
