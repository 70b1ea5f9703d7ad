// Package cron wraps robfig/cron with context-aware jobs and zap logging.
package cron

import (
	"context"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Job func(ctx context.Context)

// Runner schedules background jobs. Jobs receive the base context so they
// stop with the process.
type Runner struct {
	cron    *robfig.Cron
	logger  *zap.Logger
	baseCtx context.Context
}

func New(ctx context.Context, logger *zap.Logger) *Runner {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:    robfig.New(),
		logger:  logger,
		baseCtx: ctx,
	}
}

func (r *Runner) Add(spec string, name string, job Job) error {
	if r == nil || r.cron == nil || job == nil {
		return nil
	}
	_, err := r.cron.AddFunc(spec, func() {
		r.logger.Debug("cron job started", zap.String("job", name))
		job(r.baseCtx)
		r.logger.Debug("cron job finished", zap.String("job", name))
	})
	if err != nil {
		r.logger.Error("cron job registration failed",
			zap.String("job", name),
			zap.String("spec", spec),
			zap.Error(err))
	}
	return err
}

func (r *Runner) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
}

// Stop halts scheduling and waits for running jobs to return.
func (r *Runner) Stop() {
	if r == nil || r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}
