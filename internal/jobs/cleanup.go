package jobs

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/utkarshdubey2008/InstaPoster/internal/service"
)

// CleanupJob periodically sweeps abandoned staged uploads. Redis-backed
// OAuth state expires on its own via key TTLs and needs no sweeping.
type CleanupJob struct {
	staging  *service.StagingCache
	maxAge   time.Duration
	interval time.Duration
	done     chan struct{}
}

func NewCleanupJob(staging *service.StagingCache, maxAge, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		staging:  staging,
		maxAge:   maxAge,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	if count := j.staging.SweepStale(j.maxAge); count > 0 {
		log.Info().Int("count", count).Msg("cleaned up stale staged uploads")
	}
}
