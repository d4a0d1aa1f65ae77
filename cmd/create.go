package cmd

import (
	"context"

	"github.com/rs/zerolog/log"

	"updraft/internal/clickup"
	"updraft/internal/config"
	"updraft/internal/draft"
)

func createCmd(_ context.Context) {
	cl := clickup.New(config.Gist().String(config.CLICKUP_TOKEN))
	d := draft.New(cl,
		config.Gist().String(config.TASK_NAME),
		config.Gist().String(config.CLICKUP_LISTID),
	)
	if desc := config.Gist().String(config.TASK_DESCRIPTION); desc != "" {
		d.SetDescription(desc)
	}
	if p := config.Gist().Int(config.TASK_PRIORITY); p != 0 {
		if err := d.SetPriority(p); err != nil {
			log.Fatal().Err(err).Msg("error setting priority")
		}
	}
	if due := config.Gist().Int64(config.TASK_DUE); due != 0 {
		if err := d.SetDueDate(due, false); err != nil {
			log.Fatal().Err(err).Msg("error setting due date")
		}
	}
	if err := d.Create(""); err != nil {
		log.Fatal().Err(err).Msg("error creating task")
	}
	log.Info().Str("taskID", d.ID()).Msg("task created")
}
