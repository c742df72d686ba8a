package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config string `short:"c" help:"Configuration file path" default:"config/config.yml" type:"path"`
	Debug  bool   `short:"d" help:"Enable debug logging to the console"`

	Serve  ServeCmd  `cmd:"" help:"Serve the HTTP API and tick the cooldown"`
	Run    RunCmd    `cmd:"" help:"Start an interactive console session"`
	Add    AddCmd    `cmd:"" help:"Add a goal"`
	Check  CheckCmd  `cmd:"" help:"Check goals and start the cooldown"`
	Reset  ResetCmd  `cmd:"" help:"Reset goals, history and counter"`
	Export ExportCmd `cmd:"" help:"Export the check-in history as CSV"`
	Status StatusCmd `cmd:"" help:"Show goals, counter and countdown"`
	Init   InitCmd   `cmd:"" help:"Write a default configuration file"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("goaltracker"),
		kong.Description("Track personal goals and periodic check-ins."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := kctx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
