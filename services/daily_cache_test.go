package services

import (
	"fmt"
	"testing"

	"github.com/dailytrivia/backend/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDailyCacheGetEmptyIsMiss(t *testing.T) {
	cache := NewDailyCache()

	events, ok := cache.Get("2025-03-01")
	assert.False(t, ok)
	assert.Nil(t, events)
}

func TestDailyCachePutGetRoundTrip(t *testing.T) {
	cache := NewDailyCache()
	payload := []models.HistoryEvent{
		{Text: "A", HTML: "<p>A</p>"},
		{Text: "B", HTML: "<p>B</p>"},
	}

	cache.Put("2025-03-01", payload)

	events, ok := cache.Get("2025-03-01")
	assert.True(t, ok)
	assert.Equal(t, payload, events)
}

func TestDailyCacheDayBoundaryInvalidation(t *testing.T) {
	cache := NewDailyCache()
	cache.Put("2025-03-01", []models.HistoryEvent{{Text: "A", HTML: "<p>A</p>"}})

	_, ok := cache.Get("2025-03-02")
	assert.False(t, ok, "an entry for a different day must be a miss")
}

func TestDailyCacheLastWriteWins(t *testing.T) {
	cache := NewDailyCache()
	cache.Put("2025-03-01", []models.HistoryEvent{{Text: "old", HTML: "<p>old</p>"}})
	cache.Put("2025-03-02", []models.HistoryEvent{{Text: "new", HTML: "<p>new</p>"}})

	_, ok := cache.Get("2025-03-01")
	assert.False(t, ok)

	events, ok := cache.Get("2025-03-02")
	assert.True(t, ok)
	assert.Equal(t, "new", events[0].Text)
}

func TestDailyCacheProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	dayGen := gen.IntRange(0, 364).Map(func(offset int) string {
		return fmt.Sprintf("2025-%02d-%02d", offset/31+1, offset%28+1)
	})

	properties.Property("get after put for the same day returns the payload unchanged", prop.ForAll(
		func(day string, texts []string) bool {
			payload := make([]models.HistoryEvent, 0, len(texts))
			for _, text := range texts {
				payload = append(payload, models.HistoryEvent{Text: text, HTML: "<p>" + text + "</p>"})
			}
			if len(payload) == 0 {
				return true
			}

			cache := NewDailyCache()
			cache.Put(day, payload)

			events, ok := cache.Get(day)
			if !ok || len(events) != len(payload) {
				return false
			}
			for i := range payload {
				if events[i] != payload[i] {
					return false
				}
			}
			return true
		},
		dayGen,
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("get for any other day is a miss", prop.ForAll(
		func(day1, day2 string) bool {
			cache := NewDailyCache()
			cache.Put(day1, []models.HistoryEvent{{Text: "x", HTML: "<p>x</p>"}})

			_, ok := cache.Get(day2)
			if day1 == day2 {
				return ok
			}
			return !ok
		},
		dayGen,
		dayGen,
	))

	properties.TestingRun(t)
}
