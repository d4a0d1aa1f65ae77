package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"updraft/internal/config"
)

// Non-blocking async func
type command func(ctx context.Context)

type commandRegistry map[string]command

var commands = commandRegistry{
	"noop":   noopCmd,
	"create": createCmd,
	"watch":  watchCmd,
}

func Run() {
	cmd := config.Gist().String(config.CMD)
	cmdFn, ok := commands[cmd]
	if !ok {
		help()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan os.Signal, 1)
	signal.Notify(doneCh, os.Interrupt, syscall.SIGTERM)
	cmdFn(ctx)
	<-doneCh
	cancel()
}

func help() {
	fmt.Println("Usage: updraft [command]")
	fmt.Println("Commands: noop, create, watch")
	fmt.Println("Example: updraft --cmd create --clickup.token pk_xxx --clickup.listid 123 --task.name 'Test'")
	fmt.Println("Config params (name|required|default):\v")
	fmt.Println(config.Sprint())
}
