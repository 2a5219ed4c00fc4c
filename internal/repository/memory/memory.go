// Package memory implements repository.JokeRepository with a guarded slice.
//
// Nothing survives a restart. That is the intended lifetime of the joke store:
// it lives exactly as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/repository"
)

var _ repository.JokeRepository = (*Store)(nil)

// Store holds jokes in insertion order.
//
// SYNC.RWMUTEX:
// HTTP handlers run on many goroutines at once. Readers (List, Count) take the
// shared lock and can run in parallel; Append takes the exclusive lock, so the
// id counter and the slice always change together.
type Store struct {
	mu     sync.RWMutex
	jokes  []model.Joke
	lastID int64
}

// New returns an empty store. Use repository.Seed to load the built-in jokes.
func New() *Store {
	return &Store{}
}

func (s *Store) Append(ctx context.Context, joke *model.Joke) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	joke.ID = s.lastID
	s.jokes = append(s.jokes, *joke)
	return nil
}

// List returns a copy so callers can shuffle or filter without holding the lock.
func (s *Store) List(ctx context.Context) ([]model.Joke, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Joke, len(s.jokes))
	copy(out, s.jokes)
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jokes), nil
}
