package apicheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/rescuedex/apicheck/catalog"
)

const validDogBody = `{
	"id": 42,
	"name": "Clementine",
	"breed": "beagle",
	"age_months": 30,
	"size": "medium",
	"sex": "female",
	"adoption_status": "available",
	"photo_url": "https://cdn.rescuedex.example.com/dogs/42.jpg",
	"description": "Gentle beagle who loves car rides.",
	"tags": ["house-trained"],
	"organization_id": 7,
	"created_at": "2024-03-10T14:00:00Z",
	"updated_at": "2024-05-01T09:30:00Z"
}`

func newChecker(t *testing.T, opts ...Option) *Checker {
	t.Helper()
	c, err := New(catalog.NewRegistry(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckObjectValid(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, validDogBody)
	c := newChecker(t)

	report, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.NoError(t, err)

	assert.True(t, report.Result.Valid, "errors: %v", report.Result.Errors)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, srv.URL, report.URL)
	assert.Equal(t, "dog", report.Schema)
	assert.Equal(t, http.StatusOK, report.StatusCode)
	assert.False(t, report.Cached)
	assert.False(t, report.CheckedAt.IsZero())
}

func TestCheckObjectInvalidBodyIsDataNotError(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"id": 0, "name": ""}`)
	c := newChecker(t)

	report, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.NoError(t, err, "an invalid body must not surface as an error")

	assert.False(t, report.Result.Valid)
	assert.NotEmpty(t, report.Result.Errors)
}

func TestCheckObjectUnknownSchema(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, validDogBody)
	c := newChecker(t)

	_, err := c.CheckObject(context.Background(), srv.URL, "hamster")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaNotFound)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindNotFound, cerr.Kind)
}

func TestCheckObjectNonJSON(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, "<html>definitely not json</html>")
	c := newChecker(t)

	_, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindDecode, cerr.Kind)
}

func TestCheckObjectServerError(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, `{"error": "boom"}`)
	c := newChecker(t)

	_, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestCheckObjectUnreachable(t *testing.T) {
	c := newChecker(t, WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))

	_, err := c.CheckObject(context.Background(), "http://127.0.0.1:1/dogs/1", "dog")
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindNetwork, cerr.Kind)
}

func TestCheckListElementPaths(t *testing.T) {
	body := `[
		{"id": 1, "name": "Mo", "breed": "mixed", "adoption_status": "available", "photo_url": null},
		{"id": 2, "breed": "husky", "adoption_status": "pending", "photo_url": null},
		{"id": 3, "name": "Juno", "breed": "lab", "adoption_status": "adopted", "photo_url": null}
	]`
	srv := jsonServer(t, http.StatusOK, body)
	c := newChecker(t)

	report, err := c.CheckList(context.Background(), srv.URL, "dog_essential")
	require.NoError(t, err)

	require.False(t, report.Result.Valid)
	require.Len(t, report.Result.Errors, 1)
	assert.Contains(t, report.Result.Errors[0].Path, "[1]")
	assert.Equal(t, "name", report.Result.Errors[0].Field)
}

func TestCheckListAgainstObjectBody(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, validDogBody)
	c := newChecker(t)

	report, err := c.CheckList(context.Background(), srv.URL, "dog")
	require.NoError(t, err)

	assert.False(t, report.Result.Valid, "object body should fail array validation")
}

func TestCheckRequestHeaders(t *testing.T) {
	var gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(validDogBody))
	}))
	t.Cleanup(srv.Close)

	c := newChecker(t, WithUserAgent("smoke-suite/2.3"))
	_, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "smoke-suite/2.3", gotUA)
}

// memCache is an in-memory respcache.Cache used to observe checker caching
// behavior without a Redis instance.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	closed  bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.entries[key]
	return body, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, body []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = body
	return nil
}

func (m *memCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func TestCheckUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(validDogBody))
	}))
	t.Cleanup(srv.Close)

	cache := newMemCache()
	c := newChecker(t, WithCache(cache))
	ctx := context.Background()

	first, err := c.CheckObject(ctx, srv.URL, "dog")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := c.CheckObject(ctx, srv.URL, "dog_essential")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, second.Result.Valid, "errors: %v", second.Result.Errors)

	assert.Equal(t, 1, hits, "second check should reuse the cached body")
}

func TestCloseClosesCache(t *testing.T) {
	cache := newMemCache()
	c, err := New(catalog.NewRegistry(), WithCache(cache))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.True(t, cache.closed)
}

func TestCheckEmitsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	srv := jsonServer(t, http.StatusOK, validDogBody)
	c := newChecker(t, WithTracerProvider(tp))

	_, err := c.CheckObject(context.Background(), srv.URL, "dog")
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "apicheck.Check", spans[0].Name())

	attrs := spans[0].Attributes()
	var sawValid bool
	for _, kv := range attrs {
		if string(kv.Key) == "apicheck.valid" {
			sawValid = true
			assert.True(t, kv.Value.AsBool())
		}
	}
	assert.True(t, sawValid, "span should carry the validity attribute")
}
