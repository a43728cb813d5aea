package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"ai-assistant/internal/logging"
)

// Scheduler runs the periodic transcript backup sweep.
type Scheduler struct {
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	backupFunc func(ctx context.Context) error
	log        *logging.Logger
}

func New(log *logging.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// SetBackupFunction sets the sweep to run on each tick.
func (s *Scheduler) SetBackupFunction(f func(ctx context.Context) error) {
	s.backupFunc = f
}

// Start registers the cron entry and starts the scheduler. An empty spec
// disables scheduling.
func (s *Scheduler) Start(spec string) error {
	if spec == "" || s.backupFunc == nil {
		s.log.Event("scheduler disabled", nil)
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.log.Event("transcript backup started", map[string]any{"spec": spec})
		if err := s.backupFunc(s.ctx); err != nil {
			s.log.Error(err, map[string]any{"action": "transcript_backup"})
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Event("scheduler started", map[string]any{"spec": spec})
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.log.Event("scheduler stopped", nil)
}
