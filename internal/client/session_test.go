package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sakif/jokebox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher returns jokes in order, or err. When gate is non-nil, Random
// blocks on it so tests can observe the loading flag.
type fakeFetcher struct {
	jokes []string
	err   error
	gate  chan struct{}
	calls int
}

func (f *fakeFetcher) Random(ctx context.Context) (*model.Joke, error) {
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return nil, f.err
	}
	text := f.jokes[f.calls%len(f.jokes)]
	f.calls++
	return &model.Joke{ID: int64(f.calls), Text: text, Category: "Puns"}, nil
}

func TestSession_NextJoke(t *testing.T) {
	s := NewSession(&fakeFetcher{jokes: []string{"first", "second"}})

	assert.Equal(t, "", s.Current())
	assert.Equal(t, "first", s.NextJoke(context.Background()))
	assert.Equal(t, "second", s.NextJoke(context.Background()))
	assert.Equal(t, "second", s.Current())
	assert.False(t, s.Loading())
}

func TestSession_NextJokeFailureShowsFallback(t *testing.T) {
	s := NewSession(&fakeFetcher{err: errors.New("network down")})

	got := s.NextJoke(context.Background())

	assert.Equal(t, model.FallbackMessage, got)
	assert.Equal(t, model.FallbackMessage, s.Current())
	assert.False(t, s.Loading())
}

func TestSession_LoadingDuringFetch(t *testing.T) {
	gate := make(chan struct{})
	s := NewSession(&fakeFetcher{jokes: []string{"slow"}, gate: gate})

	done := make(chan struct{})
	go func() {
		s.NextJoke(context.Background())
		close(done)
	}()

	require.Eventually(t, s.Loading, time.Second, time.Millisecond)
	close(gate)
	<-done

	assert.False(t, s.Loading())
	assert.Equal(t, "slow", s.Current())
}

func TestSession_AddFavorite(t *testing.T) {
	s := NewSession(&fakeFetcher{jokes: []string{"keeper"}})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, ok := s.AddFavorite()
	assert.False(t, ok, "nothing to favorite before the first joke")

	s.NextJoke(context.Background())
	a, ok := s.AddFavorite()
	require.True(t, ok)
	b, ok := s.AddFavorite()
	require.True(t, ok)

	assert.Equal(t, "keeper", a.Text)
	assert.Equal(t, model.FavoriteCategory, a.Category)
	assert.Equal(t, fixed, a.SavedAt)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "each favorite gets its own id")
	assert.Len(t, s.Favorites(), 2)
}

func TestSession_FallbackCannotBeFavorited(t *testing.T) {
	s := NewSession(&fakeFetcher{err: errors.New("boom")})
	s.NextJoke(context.Background())

	_, ok := s.AddFavorite()

	assert.False(t, ok)
	assert.Empty(t, s.Favorites())
}

func TestSession_RemoveFavorite(t *testing.T) {
	s := NewSession(&fakeFetcher{jokes: []string{"one", "two", "three"}})
	var ids []string
	for range 3 {
		s.NextJoke(context.Background())
		fav, ok := s.AddFavorite()
		require.True(t, ok)
		ids = append(ids, fav.ID)
	}

	assert.True(t, s.RemoveFavorite(ids[1]))
	assert.False(t, s.RemoveFavorite(ids[1]), "second removal finds nothing")
	assert.False(t, s.RemoveFavorite("unknown"))

	favs := s.Favorites()
	require.Len(t, favs, 2)
	assert.Equal(t, "one", favs[0].Text)
	assert.Equal(t, "three", favs[1].Text)
}

func TestSession_FavoritesReturnsCopy(t *testing.T) {
	s := NewSession(&fakeFetcher{jokes: []string{"x"}})
	s.NextJoke(context.Background())
	s.AddFavorite()

	favs := s.Favorites()
	favs[0].Text = "changed"

	assert.Equal(t, "x", s.Favorites()[0].Text)
}
