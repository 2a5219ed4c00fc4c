package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendAssignsIncreasingIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &model.Joke{Text: "one", Category: "A"}
	second := &model.Joke{Text: "two", Category: "B"}

	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestStore_ListPreservesOrderAndCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, &model.Joke{Text: "one"}))
	require.NoError(t, s.Append(ctx, &model.Joke{Text: "two"}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "two", got[1].Text)

	// mutating the returned slice must not touch the store
	got[0].Text = "changed"
	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", again[0].Text)
}

func TestStore_Count(t *testing.T) {
	s := New()
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, repository.Seed(ctx, s))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(repository.SeedJokes), n)
}

func TestStore_CancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Append(ctx, &model.Joke{Text: "late"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_ConcurrentAppendsGetUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	const workers = 50
	ids := make(chan int64, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j := &model.Joke{Text: "concurrent"}
			if err := s.Append(ctx, j); err == nil {
				ids <- j.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
