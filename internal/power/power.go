// Package power issues the operating system shutdown.
package power

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Shutdowner turns the machine off.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Command runs the platform shutdown command.
type Command struct {
	Name string
	Args []string
}

// NewCommand returns the shutdown command for the host platform.
func NewCommand() *Command {
	name, args := platformCommand()
	return &Command{Name: name, Args: args}
}

func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Shutdown runs the command. Its output is discarded.
func (c *Command) Shutdown(ctx context.Context) error {
	if err := exec.CommandContext(ctx, c.Name, c.Args...).Run(); err != nil {
		return fmt.Errorf("running %q: %w", c.String(), err)
	}
	return nil
}

// DryRun reports the command it would run instead of running it.
type DryRun struct {
	Out     io.Writer
	Command *Command
}

func (d *DryRun) Shutdown(ctx context.Context) error {
	_, err := fmt.Fprintf(d.Out, "[dry-run] would run: %s\r\n", d.Command)
	return err
}
