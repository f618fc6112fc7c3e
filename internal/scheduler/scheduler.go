package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// FetchTimeout bounds a single refresh.
const FetchTimeout = 30 * time.Second

// Refresher performs one fetch-and-publish cycle.
type Refresher interface {
	FetchAndPublish(ctx context.Context) error
}

// Scheduler periodically refreshes the weather snapshot.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately; later runs follow the interval.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval < time.Minute {
		interval = 10 * time.Minute
	}

	_, err := s.scheduler.Every(interval).StartImmediately().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("scheduler: refreshing every %s", interval)
	return nil
}

func (s *Scheduler) run() {
	log.Println("scheduler: running weather fetch job")

	ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
	defer cancel()

	if err := s.refresher.FetchAndPublish(ctx); err != nil {
		log.Printf("scheduler: fetch failed, keeping previous snapshot: %v", err)
		return
	}
	log.Println("scheduler: completed weather fetch job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
