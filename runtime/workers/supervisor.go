package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"support-chat/contract"
	"support-chat/errors"
)

const restartDelay = 200 * time.Millisecond

// Supervisor runs background workers next to the HTTP server.
// A worker that panics or fails is restarted after restartDelay, one that
// returns nil is considered finished. Everything stops with the parent ctx.
type Supervisor struct {
	wg      sync.WaitGroup
	log     *slog.Logger
	workers []contract.Worker
}

func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log}
}

func (s *Supervisor) Add(worker ...contract.Worker) *Supervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run blocks until every worker has returned.
func (s *Supervisor) Run(ctx context.Context) {
	for _, worker := range s.workers {
		s.start(ctx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	name := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Debug("Worker stopping", "worker", name)
				return
			}

			err := runProtected(ctx, worker)
			if err == nil {
				s.log.Debug("Worker finished", "worker", name)
				return
			}
			if ctx.Err() != nil {
				s.log.Debug("Worker stopped", "worker", name)
				return
			}

			s.log.Warn("Worker crashed, restarting", "worker", name, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(restartDelay):
			}
		}
	}()
}

func runProtected(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.ErrWorkerPanic
		}
	}()
	return worker.Run(ctx)
}
