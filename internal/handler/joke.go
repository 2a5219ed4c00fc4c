package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/jokebox/internal/apperror"
	"github.com/sakif/jokebox/internal/model"
	"github.com/sakif/jokebox/internal/service"
)

// MaxBodyBytes caps the size of a submission body.
const MaxBodyBytes = 64 << 10

const msgSubmitFailed = "Failed to add joke"

// JokeService is the part of service.JokeService the handlers call.
// Tests can substitute a fake without a store.
type JokeService interface {
	Fetch(ctx context.Context, q service.FetchQuery) (*service.FetchResult, error)
	Submit(ctx context.Context, in service.SubmitInput) (*model.Joke, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// JokeHandler serves the JSON joke API.
type JokeHandler struct {
	svc    JokeService
	logger *slog.Logger
}

func NewJokeHandler(svc JokeService, logger *slog.Logger) *JokeHandler {
	return &JokeHandler{svc: svc, logger: logger}
}

// HandleFetch returns random jokes.
//
// HTTP: GET /api/jokes?category=Food&count=3
//
// When the effective count is 1 the body is a single joke object, otherwise it
// is an array. A bad count never fails the request; it falls back to 1.
func (h *JokeHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	res, err := h.svc.Fetch(r.Context(), service.FetchQuery{
		Category: q.Get("category"),
		Count:    service.ParseCount(q.Get("count")),
	})
	if err != nil {
		h.logger.Error("fetching jokes", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	if res.Single && len(res.Jokes) == 1 {
		writeJSON(w, http.StatusOK, res.Jokes[0])
		return
	}
	writeJSON(w, http.StatusOK, res.Jokes)
}

// HandleSubmit adds a joke to the store.
//
// HTTP: POST /api/jokes
// REQUEST BODY: {"text": "...", "category": "..."}
//
// Status codes:
//   - 201 with the created joke
//   - 400 when text is missing, blank, not a string or too long, or when
//     category is not a string. Valid JSON that is not an object has no
//     text field, so it lands here too.
//   - 500 "Failed to add joke" when the body is not JSON at all, is JSON null,
//     has trailing data, or exceeds MaxBodyBytes.
func (h *JokeHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	fields, err := decodeFields(body)
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			h.logger.Warn("unparseable joke submission", slog.String("error", err.Error()))
			writeError(w, apperror.Internal(msgSubmitFailed))
			return
		}
		// well-formed JSON that is not an object: no fields at all
		fields = map[string]any{}
	}

	joke, err := h.svc.Submit(r.Context(), service.SubmitInput{
		Text:     fields["text"],
		Category: fields["category"],
	})
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.logger.Debug("joke submission rejected", slog.String("error", err.Error()))
			writeError(w, err)
			return
		}
		h.logger.Error("submitting joke", slog.String("error", err.Error()))
		writeError(w, apperror.Internal(msgSubmitFailed))
		return
	}

	writeJSON(w, http.StatusCreated, joke)
}

// HandleCategories lists categories and their sizes.
//
// HTTP: GET /api/categories
func (h *JokeHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		h.logger.Error("listing categories", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeFields reads exactly one JSON value from r and returns it as an object.
//
// Trailing data is checked before the value's type, so "[1] garbage" is
// unparseable rather than a non-object. A non-object surfaces as a
// *json.UnmarshalTypeError. JSON null decodes into a nil map without error, so
// it is reported as io.ErrUnexpectedEOF to keep "no object at all" on the
// unparseable path.
func decodeFields(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errTrailingData
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return fields, nil
}
