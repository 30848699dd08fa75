package jobs

import (
	"context"
	"time"

	"github.com/dailytrivia/backend/services"
	"github.com/sirupsen/logrus"
)

// HistoryWarmupJob primes the daily history cache so the first visitor of a
// new day does not pay the upstream fetch. Failures are logged and dropped;
// the next request (or the next tick) retries.
type HistoryWarmupJob struct {
	HistoryService *services.HistoryService
}

func NewHistoryWarmupJob(historyService *services.HistoryService) *HistoryWarmupJob {
	return &HistoryWarmupJob{HistoryService: historyService}
}

func (j *HistoryWarmupJob) Run() {
	logrus.Info("Starting History Warmup Job")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	events, cacheHit, err := j.HistoryService.TodayEvents(ctx)
	if err != nil {
		logrus.WithError(err).Warn("History Warmup Job failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"event_count": len(events),
		"cache_hit":   cacheHit,
	}).Info("History Warmup Job completed")
}
