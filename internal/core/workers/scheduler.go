package workers

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron"
)

// DefaultStreakSchedule runs shortly after midnight UTC, when yesterday's
// streaks may have expired. The format has a leading seconds field.
const DefaultStreakSchedule = "0 5 0 * * *"

type Scheduler struct {
	cron    *cron.Cron
	worker  *StreakWorker
	timeout time.Duration
}

// NewScheduler parses schedule and registers the streak sweep on it.
func NewScheduler(schedule string, worker *StreakWorker) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultStreakSchedule
	}

	s := &Scheduler{
		cron:    cron.NewWithLocation(time.UTC),
		worker:  worker,
		timeout: 10 * time.Minute,
	}

	if err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.worker.RecomputeAll(ctx)
	if err != nil {
		log.Printf("[SCHEDULER] Streak sweep finished with errors after %s: %v", time.Since(start), err)
		return
	}
	log.Printf("[SCHEDULER] Streak sweep checked %d users in %s", n, time.Since(start))
}

// Start runs the cron loop until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	log.Println("[SCHEDULER] Cron started")
	go func() {
		<-ctx.Done()
		s.cron.Stop()
		log.Println("[SCHEDULER] Cron stopped")
	}()
}

func (s *Scheduler) Entries() []*cron.Entry {
	return s.cron.Entries()
}
