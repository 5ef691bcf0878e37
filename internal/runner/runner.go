package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jamesboyd/powertimer/internal/apperr"
	"github.com/jamesboyd/powertimer/internal/config"
	"github.com/jamesboyd/powertimer/internal/countdown"
	"github.com/jamesboyd/powertimer/internal/display"
	"github.com/jamesboyd/powertimer/internal/i18n"
	"github.com/jamesboyd/powertimer/internal/keyboard"
	"github.com/jamesboyd/powertimer/internal/logging"
	"github.com/jamesboyd/powertimer/internal/power"
)

// Exit codes returned by Report.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// MaxMinutes is the longest countdown whose length still fits in a
// time.Duration.
const MaxMinutes = math.MaxInt64 / int64(time.Minute)

// Options wires a Runner. Zero values select the real terminal, the real
// shutdown command and the wall clock.
type Options struct {
	ConfigPath  string
	Language    string
	DryRun      bool
	NoticeDelay time.Duration

	In         io.Reader
	Out        io.Writer
	Keys       keyboard.Poller
	Shutdowner power.Shutdowner
	Clock      countdown.Clock
	Geometry   display.Geometry
	Logger     *logging.Logger
}

// Runner is the interactive application loop.
type Runner struct {
	cfgPath     string
	cfg         *config.Config
	msg         *i18n.Catalog
	view        *display.Renderer
	keys        keyboard.Poller
	ctrl        *countdown.Controller
	in          *bufio.Reader
	log         *logging.Logger
	noticeDelay time.Duration
}

// New loads the config and builds the renderer and countdown controller.
// An unreadable config is logged and replaced by defaults.
func New(opts Options) *Runner {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Keys == nil {
		opts.Keys = keyboard.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	log := opts.Logger.WithComponent("runner")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Warn("using default config", map[string]any{"path": opts.ConfigPath, "error": err})
	}
	for _, role := range config.ColorRoles {
		if name := cfg.ColorFor(role); !display.IsStyle(name) {
			log.Warn("unknown color, text will be unstyled", map[string]any{"role": role, "color": name})
		}
	}

	lang := cfg.Language
	if opts.Language != "" {
		lang = opts.Language
	}
	msg := i18n.New(lang)

	var viewOpts []display.Option
	if opts.Geometry != nil {
		viewOpts = append(viewOpts, display.WithGeometry(opts.Geometry))
	}
	view := display.New(opts.Out, cfg, msg, viewOpts...)

	sd := opts.Shutdowner
	if sd == nil {
		sd = power.NewCommand()
		if opts.DryRun {
			sd = &power.DryRun{Out: opts.Out, Command: power.NewCommand()}
		}
	}

	ctrlOpts := []countdown.Option{countdown.WithLogger(opts.Logger)}
	if opts.Clock != nil {
		ctrlOpts = append(ctrlOpts, countdown.WithClock(opts.Clock))
	}

	return &Runner{
		cfgPath:     opts.ConfigPath,
		cfg:         cfg,
		msg:         msg,
		view:        view,
		keys:        opts.Keys,
		ctrl:        countdown.New(opts.Keys, display.CountdownView{Renderer: view}, sd, ctrlOpts...),
		in:          bufio.NewReader(opts.In),
		log:         log,
		noticeDelay: opts.NoticeDelay,
	}
}

// Config returns the loaded configuration.
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// guard restores the terminal on every exit path and turns a panic into an
// Unexpected error.
func (r *Runner) guard(err *error) {
	if p := recover(); p != nil {
		*err = apperr.New(apperr.Unexpected, "runner", fmt.Errorf("panic: %v", p))
	}
	if rerr := r.keys.RestoreMode(); rerr != nil {
		r.log.Error("restoring terminal failed", map[string]any{"error": rerr})
	}
}

// Run shows the menu until the user exits, input ends, or an interrupt or
// unexpected error occurs. Validation errors are shown and the loop continues.
func (r *Runner) Run(ctx context.Context) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.guard(&err)

	display.EnableVirtualTerminal()
	r.view.SetTitle(r.msg.T(i18n.WindowTitle))

	for {
		r.view.Clear()
		r.view.DrawMenu(r.msg.T(i18n.AppTitle), r.menuOptions(), r.menuFooter()...)
		r.view.Prompt(r.msg.T(i18n.PromptOption))

		choice, err := r.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, err := r.dispatch(ctx, choice)
		if apperr.Is(err, apperr.Validation) {
			r.view.Notice(r.msg.T(i18n.ErrorTitle), r.msg.T(i18n.ErrorLine, err.Error()), "error_color")
			if err := r.pause(ctx, r.noticeDelay); err != nil {
				return err
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// RunOnce runs a single countdown without the menu.
func (r *Runner) RunOnce(ctx context.Context, minutes int) (err error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.guard(&err)

	display.EnableVirtualTerminal()
	r.view.SetTitle(r.msg.T(i18n.WindowTitle))
	r.view.Status(r.msg.T(i18n.Scheduled, minutes))

	_, err = r.countdown(ctx, minutes)
	return err
}

// PrintRecent lists the recently used durations.
func (r *Runner) PrintRecent() {
	r.view.Info(r.msg.T(i18n.ConfigFile), r.cfgPath)
	if len(r.cfg.LastUsedTimes) == 0 {
		r.view.Warn(r.msg.T(i18n.NoRecent))
		return
	}
	r.view.Status(r.msg.T(i18n.RecentTitle))
	for i, m := range r.cfg.LastUsedTimes {
		r.view.Info(fmt.Sprintf("%d.", i+1), r.msg.T(i18n.OptionMinutes, m))
	}
}

// Report prints err for the user and returns the process exit code.
func (r *Runner) Report(err error) int {
	if err == nil {
		return ExitOK
	}
	switch apperr.KindOf(err) {
	case apperr.Interrupt:
		r.view.Warn(r.msg.T(i18n.Interrupted))
		return ExitInterrupted
	case apperr.Validation:
		r.view.Error(r.msg.T(i18n.ErrorLine, err.Error()))
		return ExitUsage
	default:
		r.log.Error("unexpected error", map[string]any{"error": err})
		r.view.Error(r.msg.T(i18n.UnexpectedError, err))
		return ExitError
	}
}

func (r *Runner) menuOptions() []display.MenuOption {
	opts := []display.MenuOption{
		{Key: "1", Label: r.msg.T(i18n.OptionMinutes, 30)},
		{Key: "2", Label: r.msg.T(i18n.OptionOneHour)},
		{Key: "3", Label: r.msg.T(i18n.OptionTwoHours)},
		{Key: "4", Label: r.msg.T(i18n.OptionCustom)},
	}
	if m, ok := r.cfg.MostRecent(); ok {
		opts = append(opts, display.MenuOption{Key: "r", Label: r.msg.T(i18n.OptionRepeat, m)})
	}
	return append(opts, display.MenuOption{Key: "5", Label: r.msg.T(i18n.OptionExit)})
}

func (r *Runner) menuFooter() []string {
	footer := []string{r.msg.T(i18n.MenuFooter)}
	if len(r.cfg.LastUsedTimes) > 0 {
		parts := make([]string, len(r.cfg.LastUsedTimes))
		for i, m := range r.cfg.LastUsedTimes {
			parts[i] = strconv.Itoa(m)
		}
		footer = append(footer, r.msg.T(i18n.RecentFooter, strings.Join(parts, ", ")+" min"))
	}
	return footer
}

// dispatch handles one menu choice. quit is true when the loop should end.
func (r *Runner) dispatch(ctx context.Context, choice string) (quit bool, err error) {
	switch strings.ToLower(choice) {
	case "1":
		return r.countdown(ctx, 30)
	case "2":
		return r.countdown(ctx, 60)
	case "3":
		return r.countdown(ctx, 120)
	case "4":
		r.view.Prompt(r.msg.T(i18n.PromptMinutes))
		line, err := r.readLine(ctx)
		if err != nil {
			return false, err
		}
		minutes, err := strconv.Atoi(line)
		if err != nil {
			return false, apperr.Validationf("%s", r.msg.T(i18n.NotANumber, line))
		}
		return r.countdown(ctx, minutes)
	case "r":
		if m, ok := r.cfg.MostRecent(); ok {
			return r.countdown(ctx, m)
		}
	case "5":
		r.view.Notice(r.msg.T(i18n.GoodbyeTitle), r.msg.T(i18n.Goodbye), "success_color")
		return true, r.pause(ctx, r.noticeDelay/2)
	}
	return false, apperr.Validationf("%s", r.msg.T(i18n.InvalidOption))
}

// countdown records minutes as recently used and runs one session.
// quit is true once the shutdown has been issued.
func (r *Runner) countdown(ctx context.Context, minutes int) (quit bool, err error) {
	if minutes <= 0 {
		return false, apperr.Validationf("%s", r.msg.T(i18n.NotPositive))
	}
	if int64(minutes) > MaxMinutes {
		return false, apperr.Validationf("%s", r.msg.T(i18n.TooLong, MaxMinutes))
	}

	r.cfg.AddRecent(minutes)
	if err := config.Save(r.cfgPath, r.cfg); err != nil {
		r.log.Warn("could not save config", map[string]any{"path": r.cfgPath, "error": err})
	}

	res, err := r.ctrl.Run(ctx, time.Duration(minutes)*time.Minute)
	if err != nil {
		return false, err
	}

	switch res.State {
	case countdown.CancelledByUser:
		return false, r.pause(ctx, r.noticeDelay)
	case countdown.Expired:
		if res.ShutdownErr != nil {
			r.view.Notice(r.msg.T(i18n.ErrorTitle), r.msg.T(i18n.ShutdownFailed, res.ShutdownErr), "error_color")
			return false, r.pause(ctx, r.noticeDelay)
		}
		r.view.Notice(r.msg.T(i18n.NoticeTitle), r.msg.T(i18n.ShuttingDown), "warning_color")
		return true, nil
	}
	return false, nil
}

// readLine reads one line of cooked-mode input. The read runs in its own
// goroutine so an interrupt can end the wait; it is only abandoned when the
// program is about to exit, so it never competes with the key poller.
func (r *Runner) readLine(ctx context.Context) (string, error) {
	type lineResult struct {
		line string
		err  error
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := r.in.ReadString('\n')
		ch <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", apperr.New(apperr.Interrupt, "read input", ctx.Err())
	case res := <-ch:
		if res.err != nil && res.line == "" {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// pause holds a notice on screen for d.
func (r *Runner) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return apperr.New(apperr.Interrupt, "pause", ctx.Err())
	case <-time.After(d):
		return nil
	}
}
