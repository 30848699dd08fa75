package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/dailytrivia/backend/models"
	"github.com/dailytrivia/backend/shared"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const dateLayout = "2006-01-02"

// HistoryService serves "today in history" events from the upstream API,
// fronted by the one-day single-slot cache. All date handling is UTC so the
// cache validity window matches one upstream calendar day.
type HistoryService struct {
	cache   *DailyCache
	client  *http.Client
	limiter *shared.HTTPRequestRateLimiter
	metrics *shared.CacheMetrics
	apiURL  string
	sf      singleflight.Group
	now     func() time.Time
}

// NewHistoryService creates a history service with the default configuration
func NewHistoryService() *HistoryService {
	cfg := shared.NewDefaultServiceConfiguration().HistoryAPI
	return NewHistoryServiceWithConfig(&cfg)
}

// NewHistoryServiceWithConfig creates a history service with custom upstream configuration
func NewHistoryServiceWithConfig(cfg *shared.HistoryAPIConfig) *HistoryService {
	return &HistoryService{
		cache:   NewDailyCache(),
		client:  shared.NewOptimizedHTTPClient(cfg.FetchTimeout),
		limiter: shared.NewHTTPRequestRateLimiter(cfg.PolitenessDelay),
		metrics: shared.NewCacheMetrics(),
		apiURL:  cfg.URL,
		now:     time.Now,
	}
}

// Metrics exposes the cache hit/miss counters for the health endpoint
func (s *HistoryService) Metrics() *shared.CacheMetrics {
	return s.metrics
}

// TodayEvents returns the normalized events for the current day. The boolean
// reports whether the payload came from the cache. On a miss the upstream is
// fetched once even under concurrent callers (singleflight keyed by day) and
// the cache is populated only with a non-empty normalized payload, so a
// transient upstream gap is never memoized for the rest of the day.
func (s *HistoryService) TodayEvents(ctx context.Context) ([]models.HistoryEvent, bool, error) {
	today := s.now().UTC().Format(dateLayout)

	if events, ok := s.cache.Get(today); ok {
		s.metrics.RecordHit()
		return events, true, nil
	}
	s.metrics.RecordMiss()

	result, err, _ := s.sf.Do(today, func() (interface{}, error) {
		// A caller that queued behind a successful fetch can serve the slot.
		if events, ok := s.cache.Get(today); ok {
			return events, nil
		}

		events, err := s.fetchEvents(ctx)
		if err != nil {
			s.metrics.RecordFetchError()
			return nil, err
		}

		s.cache.Put(today, events)
		return events, nil
	})
	if err != nil {
		return nil, false, err
	}

	return result.([]models.HistoryEvent), false, nil
}

// RandomEvent returns one event selected uniformly at random from today's
// events. Both modes share the same normalization and cache.
func (s *HistoryService) RandomEvent(ctx context.Context) (*models.HistoryEvent, error) {
	events, _, err := s.TodayEvents(ctx)
	if err != nil {
		return nil, err
	}

	event := events[rand.Intn(len(events))]
	return &event, nil
}

func (s *HistoryService) fetchEvents(ctx context.Context) ([]models.HistoryEvent, error) {
	if err := s.limiter.EnforceRateLimit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	shared.SetAPIRequestHeaders(request)

	response, err := s.client.Do(request)
	if err != nil {
		shared.NewServiceError(shared.ErrorCategoryUpstream, "UPSTREAM_FETCH_FAILED",
			"history upstream request failed", "HistoryService", "fetchEvents", true, err).LogError()
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		shared.NewServiceError(shared.ErrorCategoryUpstream, "UPSTREAM_BAD_STATUS",
			fmt.Sprintf("history upstream returned HTTP %d", response.StatusCode),
			"HistoryService", "fetchEvents", true, nil).LogError()
		return nil, fmt.Errorf("%w: upstream returned HTTP %d", shared.ErrUpstreamUnavailable, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}

	events, err := normalizeEvents(body)
	if err != nil {
		return nil, err
	}

	logrus.WithField("event_count", len(events)).Info("Fetched today's historical events from upstream")
	return events, nil
}

type upstreamEvent struct {
	Text        string `json:"text"`
	Description string `json:"description"`
	HTML        string `json:"html"`
}

type upstreamEnvelope struct {
	Events []upstreamEvent `json:"Events"`
	Data   struct {
		Events []upstreamEvent `json:"Events"`
	} `json:"data"`
}

// normalizeEvents is the canonical normalization for the upstream response.
// The upstream is inconsistent about its envelope: events appear under a
// top-level "Events" key or nested under "data.Events". Per record, "text"
// wins over "description"; a missing "html" is synthesized from the text.
// An absent or empty event array is ErrNoEvents, which callers must treat as
// a fetch failure rather than a cacheable empty day.
func normalizeEvents(body []byte) ([]models.HistoryEvent, error) {
	var envelope upstreamEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid upstream payload: %v", shared.ErrUpstreamUnavailable, err)
	}

	raw := envelope.Events
	if len(raw) == 0 {
		raw = envelope.Data.Events
	}
	if len(raw) == 0 {
		return nil, shared.ErrNoEvents
	}

	events := make([]models.HistoryEvent, 0, len(raw))
	for _, event := range raw {
		text := event.Text
		if text == "" {
			text = event.Description
		}

		html := event.HTML
		if html == "" {
			html = "<p>" + text + "</p>"
		}

		events = append(events, models.HistoryEvent{Text: text, HTML: html})
	}

	return events, nil
}
