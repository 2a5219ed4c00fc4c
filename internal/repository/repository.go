// Package repository defines the storage contract for jokes.
//
// The service layer depends on JokeRepository, never on a concrete backend.
// That lets cmd/server pick the in-memory store or the SQLite store at startup
// and lets tests swap in a fake without touching service code.
package repository

import (
	"context"

	"github.com/sakif/jokebox/internal/model"
)

// JokeRepository is an ordered, append-only collection of jokes.
//
// Implementations must be safe for concurrent use. Entries are returned in
// insertion order and are never updated or removed.
type JokeRepository interface {
	// Append stores joke at the end of the collection. The implementation
	// assigns joke.ID from a counter that only ever increases.
	Append(ctx context.Context, joke *model.Joke) error

	// List returns a copy of every stored joke in insertion order.
	List(ctx context.Context) ([]model.Joke, error)

	// Count returns the number of stored jokes.
	Count(ctx context.Context) (int, error)
}
