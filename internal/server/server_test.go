package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sakif/jokebox/internal/config"
	"github.com/sakif/jokebox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "jokebox", LogLevel: "error", LogFormat: "text"},
		HTTP:    config.HTTPConfig{Port: 8080},
		Store:   config.StoreConfig{Driver: driver},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://allowed.test"}},
		Metrics: config.MetricsConfig{Path: "/metrics"},
		Health:  config.HealthConfig{Endpoint: "/healthz"},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServer_EndToEnd(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ts := newTestServer(t, testConfig(driver))

			// seeded store serves a single joke by default
			resp, body := get(t, ts.URL+"/api/jokes")
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var joke model.Joke
			require.NoError(t, json.Unmarshal([]byte(body), &joke))
			assert.NotEmpty(t, joke.Text)

			// submit then observe the new category
			resp, err := http.Post(ts.URL+"/api/jokes", "application/json",
				bytes.NewBufferString(`{"text":"A new joke","category":"Fresh"}`))
			require.NoError(t, err)
			var created model.Joke
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
			resp.Body.Close()
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			assert.Equal(t, int64(16), created.ID)

			_, body = get(t, ts.URL+"/api/jokes?category=FRESH")
			require.NoError(t, json.Unmarshal([]byte(body), &joke))
			assert.Equal(t, created, joke)

			_, body = get(t, ts.URL+"/api/categories")
			var cats []model.Category
			require.NoError(t, json.Unmarshal([]byte(body), &cats))
			assert.Equal(t, model.Category{Name: "Fresh", Count: 1}, cats[len(cats)-1])
		})
	}
}

func TestServer_PageAndStatic(t *testing.T) {
	ts := newTestServer(t, testConfig(config.DriverMemory))

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Joke Generator")

	resp, body = get(t, ts.URL+"/static/js/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/api/jokes")

	resp, _ = get(t, ts.URL+"/static/css/style.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/css"))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig(config.DriverMemory))

	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)

	get(t, ts.URL+"/api/jokes?count=3")

	resp, err := http.Post(ts.URL+"/api/jokes", "application/json", bytes.NewBufferString(`{"text":"gauge"}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, body = get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "jokebox_jokes_served_total 3")
	assert.Contains(t, body, "jokebox_store_jokes 16")
	assert.Contains(t, body, `route="/api/jokes"`)
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.Metrics.Disabled = true
	ts := newTestServer(t, cfg)

	resp, _ := get(t, ts.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	ts := newTestServer(t, testConfig(config.DriverMemory))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/jokes", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://allowed.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	// browsers send the requested header names lowercased
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://allowed.test", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err = http.NewRequest(http.MethodGet, ts.URL+"/api/jokes", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://evil.test")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore("postgres")

	assert.ErrorIs(t, err, config.ErrUnknownStoreDriver)
}
