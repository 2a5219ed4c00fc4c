package client

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/jokebox/internal/model"
)

// RandomFetcher is what a Session needs from the API. *Client satisfies it.
type RandomFetcher interface {
	Random(ctx context.Context) (*model.Joke, error)
}

// Session is one user's view of the joke page: the joke on screen, whether a
// fetch is in flight, and the favorites saved so far. Nothing in it is sent to
// the server and it is gone when the process exits.
type Session struct {
	fetcher RandomFetcher
	now     func() time.Time

	mu        sync.Mutex
	current   string
	loading   bool
	favorites []model.Favorite
}

func NewSession(fetcher RandomFetcher) *Session {
	return &Session{fetcher: fetcher, now: time.Now}
}

// NextJoke fetches one random joke and makes its text current. Any failure
// makes model.FallbackMessage current instead; the error is not returned.
// The loading flag is set for the duration of the call.
func (s *Session) NextJoke(ctx context.Context) string {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	text := model.FallbackMessage
	if joke, err := s.fetcher.Random(ctx); err == nil && joke != nil && joke.Text != "" {
		text = joke.Text
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = text
	s.loading = false
	return text
}

func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// AddFavorite saves a copy of the current joke under a fresh xid. It does
// nothing and returns false when there is no joke yet or the current text is
// the fallback message.
func (s *Session) AddFavorite() (model.Favorite, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == "" || s.current == model.FallbackMessage {
		return model.Favorite{}, false
	}

	fav := model.Favorite{
		ID:       xid.New().String(),
		Text:     s.current,
		Category: model.FavoriteCategory,
		SavedAt:  s.now(),
	}
	s.favorites = append(s.favorites, fav)
	return fav, true
}

// RemoveFavorite deletes the favorite with id and reports whether one existed.
func (s *Session) RemoveFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.favorites, func(f model.Favorite) bool { return f.ID == id })
	if i < 0 {
		return false
	}
	s.favorites = slices.Delete(s.favorites, i, i+1)
	return true
}

// Favorites returns a copy in the order they were saved.
func (s *Session) Favorites() []model.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}
