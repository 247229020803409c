package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweep is a periodic job that reports how many records it touched.
type Sweep interface {
	Execute(ctx context.Context) (int, error)
}

const runTimeout = time.Minute

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func NewScheduler(log *zap.Logger) *Scheduler {
	log = log.Named("jobs")
	cl := cronLogger{log.Sugar()}

	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		log: log,
	}
}

// Add registers a sweep under a cron spec ("@every 15m", "*/5 * * * *").
func (s *Scheduler) Add(name, spec string, job Sweep) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	return err
}

func (s *Scheduler) run(name string, job Sweep) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	n, err := job.Execute(ctx)
	if err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("job finished",
			zap.String("job", name),
			zap.Int("affected", n),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
