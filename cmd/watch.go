package cmd

import (
	"context"

	"updraft/internal/clickup"
	"updraft/internal/config"
	"updraft/internal/domain"
)

func watchCmd(ctx context.Context) {
	cl := clickup.New(config.Gist().String(config.CLICKUP_TOKEN))
	useCase := domain.New(ctx, cl, config.Gist().String(config.WATCH_TASKID))
	useCase.WatchTask(config.Gist().String(config.WATCH_CRON))
	defer useCase.Stop()
}
