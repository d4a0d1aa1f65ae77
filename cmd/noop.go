package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
)

func noopCmd(_ context.Context) {
	log.Info().Msg("noop command, wiring ok")
}
