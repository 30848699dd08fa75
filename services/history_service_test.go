package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dailytrivia/backend/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryService(upstreamURL string) *HistoryService {
	cfg := &shared.HistoryAPIConfig{
		URL:             upstreamURL,
		FetchTimeout:    2 * time.Second,
		PolitenessDelay: 0,
	}
	service := NewHistoryServiceWithConfig(cfg)
	service.now = func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestTodayEventsFetchesAndCaches(t *testing.T) {
	var upstreamCalls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&upstreamCalls, 1)
		w.Write([]byte(`{"Events":[{"text":"A"}]}`))
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)
	ctx := context.Background()

	events, cacheHit, err := service.TodayEvents(ctx)
	require.NoError(t, err)
	assert.False(t, cacheHit)
	require.Len(t, events, 1)
	assert.Equal(t, "A", events[0].Text)
	assert.Equal(t, "<p>A</p>", events[0].HTML)

	// Second call the same day is a cache hit; upstream is not contacted again.
	events, cacheHit, err = service.TodayEvents(ctx)
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, "A", events[0].Text)
	assert.Equal(t, int64(1), atomic.LoadInt64(&upstreamCalls))
}

func TestTodayEventsNestedEnvelope(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"Events":[{"description":"nested event","html":"<b>rich</b>"}]}}`))
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)

	events, _, err := service.TodayEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "nested event", events[0].Text)
	assert.Equal(t, "<b>rich</b>", events[0].HTML)
}

func TestTodayEventsEmptyResponseIsNotCached(t *testing.T) {
	var upstreamCalls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&upstreamCalls, 1)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)
	ctx := context.Background()

	_, _, err := service.TodayEvents(ctx)
	assert.ErrorIs(t, err, shared.ErrNoEvents)

	// The empty result must not be memoized; the next request retries upstream.
	_, _, err = service.TodayEvents(ctx)
	assert.ErrorIs(t, err, shared.ErrNoEvents)
	assert.Equal(t, int64(2), atomic.LoadInt64(&upstreamCalls))
}

func TestTodayEventsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)

	_, _, err := service.TodayEvents(context.Background())
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	assert.NotErrorIs(t, err, shared.ErrNoEvents)
}

func TestTodayEventsUpstreamTimeout(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"Events":[{"text":"late"}]}`))
	}))
	defer upstream.Close()

	cfg := &shared.HistoryAPIConfig{
		URL:          upstream.URL,
		FetchTimeout: 50 * time.Millisecond,
	}
	service := NewHistoryServiceWithConfig(cfg)

	_, _, err := service.TodayEvents(context.Background())
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}

func TestTodayEventsConcurrentMissesShareOneFetch(t *testing.T) {
	var upstreamCalls int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&upstreamCalls, 1)
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"Events":[{"text":"A"}]}`))
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = service.TodayEvents(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&upstreamCalls),
		"concurrent cold-start requests must share a single upstream fetch")
}

func TestRandomEventComesFromTodaysEvents(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Events":[{"text":"A"},{"text":"B"},{"text":"C"}]}`))
	}))
	defer upstream.Close()

	service := newTestHistoryService(upstream.URL)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		event, err := service.RandomEvent(context.Background())
		require.NoError(t, err)
		seen[event.Text] = true
		assert.Contains(t, []string{"A", "B", "C"}, event.Text)
	}
	assert.Greater(t, len(seen), 1, "50 draws from three events should hit more than one")
}

func TestNormalizeEvents(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantHTML string
		wantErr  error
	}{
		{
			name:     "text with synthesized html",
			body:     `{"Events":[{"text":"A"}]}`,
			wantText: "A",
			wantHTML: "<p>A</p>",
		},
		{
			name:     "description fallback",
			body:     `{"Events":[{"description":"D"}]}`,
			wantText: "D",
			wantHTML: "<p>D</p>",
		},
		{
			name:     "html preserved",
			body:     `{"Events":[{"text":"A","html":"<em>A</em>"}]}`,
			wantText: "A",
			wantHTML: "<em>A</em>",
		},
		{
			name:     "neither text nor description",
			body:     `{"Events":[{"html":"<p>only html</p>"}]}`,
			wantText: "",
			wantHTML: "<p>only html</p>",
		},
		{
			name:    "no events key",
			body:    `{}`,
			wantErr: shared.ErrNoEvents,
		},
		{
			name:    "empty events array",
			body:    `{"Events":[]}`,
			wantErr: shared.ErrNoEvents,
		},
		{
			name:    "malformed payload",
			body:    `not json`,
			wantErr: shared.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := normalizeEvents([]byte(tt.body))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.wantText, events[0].Text)
			assert.Equal(t, tt.wantHTML, events[0].HTML)
		})
	}
}
