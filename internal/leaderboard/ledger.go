// Package leaderboard maintains the ranked, bounded score ledger.
package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/flappykiro/leaderboard-service/internal/models"
	"github.com/flappykiro/leaderboard-service/internal/store"
)

const (
	// DefaultCapacity bounds the ledger; overflow entries are discarded.
	DefaultCapacity = 100
	// DefaultLimit is how many entries a leaderboard read returns when the
	// caller does not ask for a specific count.
	DefaultLimit = 50
)

// Ledger holds the ranked scores in memory, mirrored to a JSON file on every
// mutation. Invariant after every Add: entries are ordered by score
// descending then created_at ascending, and len(entries) <= capacity.
type Ledger struct {
	mu       sync.Mutex
	entries  []models.ScoreEntry
	file     *store.JSONFile[models.ScoreEntry]
	capacity int
	now      func() time.Time
	tracer   trace.Tracer
}

// New loads the persisted ledger from the file store. A missing or corrupt
// file yields an empty ledger (the store logs the discard).
func New(file *store.JSONFile[models.ScoreEntry], capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l := &Ledger{
		file:     file,
		capacity: capacity,
		now:      time.Now,
		tracer:   otel.Tracer("leaderboard"),
	}
	l.entries = file.Load()
	slog.Info("loaded scores", slog.Int("count", len(l.entries)), slog.String("file", file.Path()))
	return l
}

// Add records a score and keeps the ranking invariant: insert, full re-sort,
// truncate to capacity, persist. The whole cycle runs under the ledger lock.
// The constructed entry is returned even when it did not rank high enough to
// survive truncation; a failed persist is returned as an error because an
// unrecorded score must not be reported as accepted.
func (l *Ledger) Add(ctx context.Context, username string, score int, difficulty string) (models.ScoreEntry, error) {
	_, span := l.tracer.Start(ctx, "leaderboard.add")
	defer span.End()
	span.SetAttributes(
		attribute.String("username", username),
		attribute.Int("score", score),
		attribute.String("difficulty", difficulty),
	)

	entry := models.ScoreEntry{
		Username:   username,
		Score:      score,
		Difficulty: difficulty,
		CreatedAt:  l.now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	// Re-sorting all of it is O(capacity log capacity) per write; with a
	// 100-entry bound that beats maintaining an incremental structure.
	// Stable sort keeps earlier submissions ahead on identical timestamps.
	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].Score != l.entries[j].Score {
			return l.entries[i].Score > l.entries[j].Score
		}
		return l.entries[i].CreatedAt.Before(l.entries[j].CreatedAt)
	})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}

	if err := l.file.Save(l.entries); err != nil {
		span.RecordError(err)
		return models.ScoreEntry{}, err
	}

	slog.Info("score added",
		slog.String("username", username),
		slog.Int("score", score),
		slog.String("difficulty", difficulty))
	return entry, nil
}

// Top returns the first limit entries in current rank order. limit values
// below zero read as zero and values past the ledger size are capped. The
// returned slice is a copy; callers cannot perturb the ranking.
func (l *Ledger) Top(limit int) []models.ScoreEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]models.ScoreEntry, limit)
	copy(out, l.entries[:limit])
	return out
}

// Len reports the current ledger size.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
