package workers

import (
	"log"
	"time"

	"shiphaus-platform/store"

	"github.com/go-co-op/gocron/v2"
)

// StartTokenReaper sweeps expired CLI tokens and lapsed rate-limit counters
// once a minute. The store already refuses expired tokens on read; the
// reaper just keeps the tables from growing without bound.
func StartTokenReaper(st store.Store) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			purged, err := st.PurgeExpired(time.Now())
			if err != nil {
				log.Printf("[Reaper] purge failed: %v", err)
				return
			}
			if purged > 0 {
				log.Printf("🧹 [Reaper] removed %d expired tokens/counters", purged)
			}
		}),
	)
}
