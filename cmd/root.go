package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jamesboyd/powertimer/internal/config"
	"github.com/jamesboyd/powertimer/internal/logging"
	"github.com/jamesboyd/powertimer/internal/runner"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "powertimer",
	Short:         "Schedule a cancellable system shutdown",
	Long:          "PowerTimer counts down from a chosen number of minutes, drawing a live clock\nand progress bar, and shuts the machine down when time runs out.\nPress C at any point during the countdown to cancel.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

var startCmd = &cobra.Command{
	Use:           "start <minutes>",
	Short:         "Run a single countdown without the menu",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStart,
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used durations",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

// exitCode is set by commands that report their own errors.
var exitCode int

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", os.Getenv("POWERTIMER_CONFIG"), "Config file, .json, .yaml or .toml [$POWERTIMER_CONFIG]")
	flags.Bool("dry-run", envBoolOrDefault("POWERTIMER_DRY_RUN", false), "Print the shutdown command instead of running it [$POWERTIMER_DRY_RUN]")
	flags.String("log-file", os.Getenv("POWERTIMER_LOG_FILE"), "Append diagnostic logs to this file [$POWERTIMER_LOG_FILE]")
	flags.String("lang", os.Getenv("POWERTIMER_LANG"), "Interface language, e.g. en or es [$POWERTIMER_LANG]")
	flags.Duration("notice-delay", envDurationOrDefault("POWERTIMER_NOTICE_DELAY", 2*time.Second), "How long notices stay on screen [$POWERTIMER_NOTICE_DELAY]")
	flags.String("log-level", envOrDefault("POWERTIMER_LOG_LEVEL", "info"), "Log level: debug, info, warn, error [$POWERTIMER_LOG_LEVEL]")

	rootCmd.AddCommand(startCmd, recentCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	r, closeLog, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	exitCode = r.Report(r.Run(cmd.Context()))
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	minutes, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid minutes %q: %w", args[0], err)
	}

	r, closeLog, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	exitCode = r.Report(r.RunOnce(cmd.Context(), minutes))
	return nil
}

func runRecent(cmd *cobra.Command, args []string) error {
	r, closeLog, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	r.PrintRecent()
	return nil
}

func newRunner(cmd *cobra.Command) (*runner.Runner, func(), error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	logFile, _ := cmd.Flags().GetString("log-file")
	lang, _ := cmd.Flags().GetString("lang")
	logLevel, _ := cmd.Flags().GetString("log-level")
	noticeDelay, _ := cmd.Flags().GetDuration("notice-delay")

	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("locating config directory: %w", err)
		}
		cfgPath = p
	}

	logger := logging.New()
	logger.SetLevel(logging.ParseLevel(logLevel))
	closeLog := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		logger.SetOutput(f)
		closeLog = func() { f.Close() }
	}

	r := runner.New(runner.Options{
		ConfigPath:  cfgPath,
		Language:    lang,
		DryRun:      dryRun,
		NoticeDelay: noticeDelay,
		Logger:      logger,
	})
	return r, closeLog, nil
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return runner.ExitUsage
	}
	return exitCode
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
