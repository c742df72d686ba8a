// Package console is the terminal front end of the tracker: an interactive
// prompt for `goaltracker run` and single commands for the one-shot CLI.
package console

import (
	"bufio"
	"context"
	"fmt"
	"goaltracker/internal/export"
	"goaltracker/internal/providers"
	"goaltracker/internal/scheduler/interfaces"
	"goaltracker/internal/services"
	"io"
	"os"
	"strings"
	"sync"
)

const helpText = `Commands:
  add <goal>   add a goal
  check        check your goals (starts the cooldown)
  reset        clear goals, history and counter
  export       write the history CSV and share it
  status       show goals, counter and countdown
  history      list check-ins
  help         show this help
  quit         save and exit`

type Console struct {
	service   services.TrackerServiceInterface
	scheduler interfaces.SchedulerInterface
	sharer    export.SharerInterface
	logger    providers.Logger

	in         io.Reader
	out        io.Writer
	outMu      sync.Mutex
	readerOnce sync.Once
	lines      chan string

	// AssumeYes answers the reset confirmation without prompting.
	AssumeYes bool
	canCheck  bool
}

func NewConsole(service services.TrackerServiceInterface, scheduler interfaces.SchedulerInterface, sharer export.SharerInterface, logger providers.Logger) *Console {
	return &Console{
		service:   service,
		scheduler: scheduler,
		sharer:    sharer,
		logger:    logger,
		in:        os.Stdin,
		out:       os.Stdout,
		canCheck:  true,
	}
}

// SetIO replaces stdin/stdout; call before Run or Exec.
func (c *Console) SetIO(in io.Reader, out io.Writer) {
	c.in = in
	c.out = out
}

func (c *Console) printf(format string, args ...any) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// Render only reports the countdown becoming ready; ticks are otherwise silent.
func (c *Console) Render(view services.TrackerView) {
	c.outMu.Lock()
	becameReady := view.CanCheck && !c.canCheck
	c.canCheck = view.CanCheck
	c.outMu.Unlock()

	if becameReady && view.ViewCount > 0 {
		c.printf("%s\n", view.CountdownText)
	}
}

func (c *Console) Notify(message string) {
	c.printf("* %s\n", message)
}

// Confirm asks on the console and reads the answer from the input.
func (c *Console) Confirm(title, message string) bool {
	if c.AssumeYes {
		return true
	}
	c.printf("%s\n%s [y/N] ", title, message)
	answer, ok := <-c.input()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) input() <-chan string {
	c.readerOnce.Do(func() {
		c.lines = make(chan string)
		go func() {
			defer close(c.lines)
			scanner := bufio.NewScanner(c.in)
			for scanner.Scan() {
				c.lines <- scanner.Text()
			}
		}()
	})
	return c.lines
}

// Run is the interactive session. It returns when the input ends, the user
// quits or ctx is cancelled; the snapshot is saved on the way out.
func (c *Console) Run(ctx context.Context) error {
	c.service.SetPresenter(c)
	if err := c.scheduler.Restore(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if err := c.scheduler.Init(); err != nil {
		return err
	}

	c.logger.Debugf(providers.TypeApp, "Console session started")
	c.printView(c.service.View())
	c.printf("Type help for commands.\n")

	lines := c.input()
loop:
	for {
		c.printf("> ")
		select {
		case <-ctx.Done():
			c.printf("\n")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if quit := c.dispatch(line); quit {
				break loop
			}
		}
	}

	c.scheduler.Stop()
	err := c.scheduler.Persist()
	c.service.Close()
	return err
}

// Exec restores the tracker, runs one command line and saves. Nothing ticks
// between two invocations, so the time since the last save is applied to the
// restored cooldown first.
func (c *Console) Exec(line string) error {
	c.service.SetPresenter(c)
	if err := c.scheduler.Restore(); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if elapsed := c.service.SinceLastSave(); elapsed > 0 {
		c.service.Tick(elapsed)
	}
	c.dispatch(line)
	return c.scheduler.Persist()
}

func (c *Console) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "add":
		if arg == "" {
			c.printf("usage: add <goal>\n")
			return false
		}
		c.service.AddGoal(arg)
	case "check":
		if c.service.CheckGoals() {
			c.printCheck(c.service.View())
		}
	case "reset":
		if !c.service.Reset(c) {
			c.printf("Reset cancelled\n")
		}
	case "export":
		path, err := c.service.ExportHistory(c.sharer)
		if err == nil {
			c.printf("Exported history to %s\n", path)
		}
	case "status":
		c.printView(c.service.View())
	case "history":
		c.printHistory(c.service.View())
	case "help":
		c.printf("%s\n", helpText)
	case "quit", "exit":
		return true
	default:
		c.printf("unknown command %q, type help\n", cmd)
	}
	return false
}

func (c *Console) printView(view services.TrackerView) {
	var b strings.Builder
	b.WriteString("Goals:\n")
	if len(view.Goals) == 0 {
		b.WriteString("  " + services.NoGoalsText + "\n")
	}
	for i, g := range view.Goals {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, g)
	}
	b.WriteString(view.CounterText + "\n")
	b.WriteString(view.CountdownText + "\n")
	c.printf("%s", b.String())
}

func (c *Console) printCheck(view services.TrackerView) {
	var b strings.Builder
	if view.Placeholder != "" {
		b.WriteString(view.Placeholder + "\n")
	}
	for _, g := range view.DisplayedGoals {
		b.WriteString("- " + g + "\n")
	}
	b.WriteString(view.CounterText + "\n")
	b.WriteString(view.CountdownText + "\n")
	c.printf("%s", b.String())
}

func (c *Console) printHistory(view services.TrackerView) {
	if len(view.History) == 0 {
		c.printf("No check-ins yet\n")
		return
	}
	var b strings.Builder
	for _, h := range view.History {
		b.WriteString(h.String() + "\n")
	}
	c.printf("%s", b.String())
}
