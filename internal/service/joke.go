// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, filters, draws at random
//	Repository (Data layer)  → owns the joke collection
//
// JokeService takes a repository.JokeRepository (interface), not a concrete
// store, so main.go decides between memory and SQLite and tests pass a fake.
// The same service backs the HTTP API and nothing in it knows about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sakif/jokebox/internal/apperror"
	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/repository"
)

const (
	MaxTextLength     = 2000
	MaxCategoryLength = 50
)

// Messages returned to clients on a rejected submission.
const (
	msgTextRequired    = "Joke text is required and must be a string"
	msgCategoryNotText = "Joke category must be a string"
	msgTextTooLong     = "Joke text must be %d characters or less"
	msgCategoryTooLong = "Joke category must be %d characters or less"
)

// Reasons passed to Recorder.SubmitRejected.
const (
	RejectMissingText     = "missing_text"
	RejectInvalidCategory = "invalid_category"
	RejectTextTooLong     = "text_too_long"
	RejectCategoryTooLong = "category_too_long"
)

// FetchQuery selects jokes. An empty Category means "any category";
// a Count below 1 is treated as DefaultCount.
type FetchQuery struct {
	Category string
	Count    int
}

// FetchResult is what Fetch drew from the store.
type FetchResult struct {
	Jokes []model.Joke
	// Single is true when exactly one joke was requested. The HTTP layer then
	// returns a bare object instead of an array.
	Single bool
}

// SubmitInput carries the decoded fields of a submission. Values come straight
// from a JSON decode, so a field can be nil (absent or null), a string, or any
// other JSON type. Type checking is part of validation.
type SubmitInput struct {
	Text     any
	Category any
}

// JokeService fetches and submits jokes.
type JokeService struct {
	repo     repository.JokeRepository
	recorder Recorder
	logger   *slog.Logger

	// *rand.Rand is not safe for concurrent use
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option customizes a JokeService.
type Option func(*JokeService)

// WithRand injects the random source. Tests use a fixed seed for repeatable draws.
func WithRand(rng *rand.Rand) Option {
	return func(s *JokeService) { s.rng = rng }
}

// WithRecorder sets where business events are reported.
func WithRecorder(r Recorder) Option {
	return func(s *JokeService) { s.recorder = r }
}

func NewJokeService(repo repository.JokeRepository, logger *slog.Logger, opts ...Option) *JokeService {
	s := &JokeService{
		repo:     repo,
		recorder: NopRecorder{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Fetch draws jokes at random without replacement.
//
// The candidate pool is every joke whose category equals q.Category under
// Unicode case folding. If no category was given, or it matched nothing, the
// pool is the whole store. At most len(pool) jokes are returned and no joke
// appears twice in one result.
func (s *JokeService) Fetch(ctx context.Context, q FetchQuery) (*FetchResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching jokes: %w", err)
	}
	s.recorder.StoreSize(len(all))

	if len(all) == 0 {
		return nil, apperror.Empty("jokes")
	}

	count := q.Count
	if count < 1 {
		count = DefaultCount
	}

	pool := all
	if category := strings.TrimSpace(q.Category); category != "" {
		pool = filterByCategory(all, category)
		if len(pool) == 0 {
			pool = all
			s.recorder.CategoryFallback()
			s.logger.Debug("category matched nothing, drawing from all jokes",
				"category", category,
			)
		}
	}

	s.rngMu.Lock()
	drawn := Draw(s.rng, pool, count)
	s.rngMu.Unlock()

	s.recorder.JokesServed(len(drawn))

	return &FetchResult{
		Jokes:  drawn,
		Single: count == 1,
	}, nil
}

func filterByCategory(jokes []model.Joke, category string) []model.Joke {
	var out []model.Joke
	for _, j := range jokes {
		if strings.EqualFold(j.Category, category) {
			out = append(out, j)
		}
	}
	return out
}

// Submit validates in and appends a new joke to the store.
//
// Text must be a non-blank string. Category may be absent, null or blank, in
// which case it becomes model.DefaultCategory; any other non-string value is
// rejected. Both fields are trimmed before they are stored.
func (s *JokeService) Submit(ctx context.Context, in SubmitInput) (*model.Joke, error) {
	text, ok := in.Text.(string)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		s.recorder.SubmitRejected(RejectMissingText)
		return nil, apperror.ValidationFailed("text", msgTextRequired)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		s.recorder.SubmitRejected(RejectTextTooLong)
		return nil, apperror.ValidationFailed("text", fmt.Sprintf(msgTextTooLong, MaxTextLength))
	}

	category := model.DefaultCategory
	switch c := in.Category.(type) {
	case nil:
	case string:
		if c = strings.TrimSpace(c); c != "" {
			category = c
		}
	default:
		s.recorder.SubmitRejected(RejectInvalidCategory)
		return nil, apperror.ValidationFailed("category", msgCategoryNotText)
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		s.recorder.SubmitRejected(RejectCategoryTooLong)
		return nil, apperror.ValidationFailed("category", fmt.Sprintf(msgCategoryTooLong, MaxCategoryLength))
	}

	joke := &model.Joke{Text: text, Category: category}
	if err := s.repo.Append(ctx, joke); err != nil {
		return nil, fmt.Errorf("submitting joke: %w", err)
	}

	s.recorder.JokeSubmitted()
	if n, err := s.repo.Count(ctx); err == nil {
		s.recorder.StoreSize(n)
	} else {
		s.logger.Warn("counting jokes after submit", "error", err)
	}
	s.logger.Info("joke submitted", "id", joke.ID, "category", joke.Category)

	return joke, nil
}

// Categories lists the distinct categories in the order they first appear,
// with the number of jokes in each.
func (s *JokeService) Categories(ctx context.Context) ([]model.Category, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	index := make(map[string]int)
	out := []model.Category{}
	for _, j := range all {
		i, seen := index[j.Category]
		if !seen {
			index[j.Category] = len(out)
			out = append(out, model.Category{Name: j.Category, Count: 1})
			continue
		}
		out[i].Count++
	}
	return out, nil
}
