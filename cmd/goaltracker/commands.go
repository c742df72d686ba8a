package main

import (
	"context"
	"errors"
	"fmt"
	"goaltracker/internal/console"
	"goaltracker/internal/di"
	"goaltracker/internal/providers"
	"goaltracker/internal/storage"
	"goaltracker/internal/structures"
	"io/fs"
	"os"
	"strings"
)

func (c *CLI) flags() *structures.CliFlags {
	return &structures.CliFlags{ConfigPath: c.Config, DebugMode: c.Debug}
}

// runLine runs one console command line against the persisted tracker.
func runLine(root *CLI, line string, assumeYes bool) error {
	con, cleanup, err := di.InitConsole(root.flags())
	if err != nil {
		return err
	}
	defer cleanup()
	con.AssumeYes = assumeYes
	return con.Exec(line)
}

func withConsole(root *CLI, fn func(*console.Console) error) error {
	con, cleanup, err := di.InitConsole(root.flags())
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(con)
}

type ServeCmd struct{}

func (s *ServeCmd) Run(ctx context.Context, root *CLI) error {
	app, cleanup, err := di.InitApp(root.flags())
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(ctx)
}

type RunCmd struct{}

func (r *RunCmd) Run(ctx context.Context, root *CLI) error {
	return withConsole(root, func(con *console.Console) error {
		return con.Run(ctx)
	})
}

type AddCmd struct {
	Goal []string `arg:"" help:"Goal text"`
}

func (a *AddCmd) Run(root *CLI) error {
	return runLine(root, "add "+strings.Join(a.Goal, " "), false)
}

type CheckCmd struct{}

func (c *CheckCmd) Run(root *CLI) error {
	return runLine(root, "check", false)
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (r *ResetCmd) Run(root *CLI) error {
	return runLine(root, "reset", r.Yes)
}

type ExportCmd struct{}

func (e *ExportCmd) Run(root *CLI) error {
	return runLine(root, "export", false)
}

type StatusCmd struct{}

func (s *StatusCmd) Run(root *CLI) error {
	return runLine(root, "status", false)
}

type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (i *InitCmd) Run(root *CLI) error {
	if err := writeDefaultConfig(root.Config, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", root.Config)
	return nil
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	data, err := providers.MarshalConfig(providers.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return storage.WriteFileAtomic(path, data, 0644)
}
