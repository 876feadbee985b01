// Package retention periodically purges old feed entries.
package retention

import (
	"context"
	"log/slog"
	"time"

	"retroboard/internal/metrics"
)

type Purger interface {
	PurgeFeed(ctx context.Context, olderThanDays int) (int64, error)
}

type Job struct {
	Purger   Purger
	Days     int
	Interval time.Duration
	Log      *slog.Logger
}

// Run purges once right away and then on every tick until ctx is done.
// Failures are logged and retried on the next tick.
func (j *Job) Run(ctx context.Context) {
	log := j.Log
	if log == nil {
		log = slog.Default()
	}
	t := time.NewTicker(j.Interval)
	defer t.Stop()
	for {
		j.purge(ctx, log)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func (j *Job) purge(ctx context.Context, log *slog.Logger) {
	n, err := j.Purger.PurgeFeed(ctx, j.Days)
	if err != nil {
		if ctx.Err() == nil {
			log.Error("purge feed", "err", err)
		}
		return
	}
	metrics.PostsPurged.Add(float64(n))
	log.Info("purged feed", "posts", n, "older_than_days", j.Days)
}
