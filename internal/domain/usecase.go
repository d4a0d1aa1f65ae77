package domain

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"updraft/internal/draft"
)

// UseCase periodically probes a remote task's existence, to notice
// when a tracked task is closed or deleted out-of-band.
type UseCase struct {
	svc    draft.Service
	taskID string
	pool   *pool.ContextPool
	ctx    context.Context
}

func New(ctx context.Context, svc draft.Service, taskID string) *UseCase {
	return &UseCase{
		svc:    svc,
		taskID: taskID,
		pool:   pool.New().WithContext(ctx).WithMaxGoroutines(10),
		ctx:    ctx,
	}
}

func (uc *UseCase) ProbeOnce() error {
	task, found, err := uc.svc.GetTask(uc.taskID)
	if err != nil {
		return err
	}
	if !found {
		log.Warn().Str("taskID", uc.taskID).Msg("task not found")
		return nil
	}
	log.Info().Str("taskID", task.ID).Str("status", task.Status.Status).Msg("task alive")
	return nil
}

func (uc *UseCase) WatchTask(cronExpr string) {
	taskr := tasker.New(tasker.Option{})
	taskr.Task(cronExpr, func(_ context.Context) (int, error) {
		return 0, uc.ProbeOnce()
	})
	uc.pool.Go(func(ctx context.Context) error {
		taskr.Run()
		return nil
	})
}

func (uc *UseCase) Stop() {
	uc.pool.Wait()
}
