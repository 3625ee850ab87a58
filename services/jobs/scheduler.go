// Package jobs runs the site's background maintenance on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is one unit of scheduled work
type Task func(ctx context.Context) error

// Scheduler runs named tasks on cron specs ("@hourly", "0 6 * * MON", ...)
type Scheduler struct {
	cron  *cron.Cron
	ctx   context.Context
	mu    sync.Mutex
	tasks map[string]Task
}

// NewScheduler returns a stopped scheduler. Tasks receive ctx.
func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		ctx:   ctx,
		tasks: make(map[string]Task),
	}
}

// Add registers task under name. An empty spec leaves the task unscheduled;
// it can still be started with RunNow.
func (s *Scheduler) Add(name, spec string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	if spec != "" {
		if _, err := s.cron.AddFunc(spec, func() { s.run(name, task) }); err != nil {
			return fmt.Errorf("job %q: invalid schedule %q: %w", name, spec, err)
		}
		log.Printf("[INFO] Scheduled job %s (%s)", name, spec)
	}
	s.tasks[name] = task
	return nil
}

// RunNow runs a registered task synchronously
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	return s.run(name, task)
}

// Start runs the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for running tasks until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Println("[WARNING] Background jobs still running at shutdown")
	}
}

func (s *Scheduler) run(name string, task Task) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", name, r)
		}
		if err != nil {
			log.Printf("[WARNING] Job %s failed: %v", name, err)
			return
		}
		log.Printf("[INFO] Job %s finished in %s", name, time.Since(start).Round(time.Millisecond))
	}()
	return task(s.ctx)
}
