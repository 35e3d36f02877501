package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/j-veylop/activity-insights-tui/internal/clock"
	"github.com/j-veylop/activity-insights-tui/internal/config"
	"github.com/j-veylop/activity-insights-tui/internal/ingest"
	"github.com/j-veylop/activity-insights-tui/internal/models"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/services"
	"github.com/j-veylop/activity-insights-tui/internal/version"
)

// cli carries what the commands share. Fields are swapped out in tests.
type cli struct {
	clock      clock.Clock
	stdout     io.Writer
	isTerminal func() bool
	runTUI     func(cfg *config.Config, clk clock.Clock) error

	cfg   *config.Config
	flags flagValues
}

// flagValues override the env configuration when set.
type flagValues struct {
	logPath        string
	dayFilter      string
	rangeDays      int
	sessionGap     time.Duration
	sequenceLength int
	logLevel       string
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "ait",
		Short: "Insights from your activity log",
		Long: `ait analyzes a desktop activity log (CSV or ActivityWatch JSON) and shows
where the time goes: categories, sessions, app loyalty, patterns and a
seven-day forecast.

On a terminal it opens the dashboard; when output is piped it prints the
text report instead.`,
		Version:           version.GetVersion(),
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.isTerminal() {
				return c.runTUI(c.cfg, c.clock)
			}
			return c.writeReport(report.FormatText, nil)
		},
	}
	root.SetOut(c.stdout)
	root.SetVersionTemplate(version.Info() + "\n")

	f := root.PersistentFlags()
	f.StringVarP(&c.flags.logPath, "log", "l", "", "activity log to analyze (ACTIVITY_LOG_PATH)")
	f.StringVar(&c.flags.dayFilter, "days", "", "day filter: all, weekday or weekend (DAY_FILTER)")
	f.IntVar(&c.flags.rangeDays, "range", 0, "analyze the last N days, 0 for all time (RANGE_DAYS)")
	f.DurationVar(&c.flags.sessionGap, "session-gap", 0, "idle gap that ends an activity block (SESSION_GAP)")
	f.IntVar(&c.flags.sequenceLength, "sequence-length", 0, "apps per transition sequence, 2-5 (SEQUENCE_LENGTH)")
	f.StringVar(&c.flags.logLevel, "log-level", "", "debug, info, warn or error (LOG_LEVEL)")

	root.AddCommand(
		newTUICmd(c),
		newReportCmd(c),
		newForecastCmd(c),
		newAnomaliesCmd(c),
		newVersionCmd(c),
	)
	return root
}

// loadConfig reads env configuration and applies explicitly set flags.
func (c *cli) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.ActivityLogPath = c.flags.logPath
	}
	if flags.Changed("days") {
		filter, err := models.ParseDayFilter(c.flags.dayFilter)
		if err != nil {
			return err
		}
		cfg.DayFilter = filter
	}
	if flags.Changed("range") {
		if c.flags.rangeDays < 0 {
			return fmt.Errorf("--range must not be negative, got %d", c.flags.rangeDays)
		}
		cfg.RangeDays = c.flags.rangeDays
	}
	if flags.Changed("session-gap") {
		cfg.SessionGap = c.flags.sessionGap
	}
	if flags.Changed("sequence-length") {
		if c.flags.sequenceLength < 2 || c.flags.sequenceLength > 5 {
			return fmt.Errorf("--sequence-length must be between 2 and 5, got %d", c.flags.sequenceLength)
		}
		cfg.SequenceLength = c.flags.sequenceLength
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.flags.logLevel
	}

	c.cfg = cfg
	return nil
}

// buildReport loads the configured log and runs every analyzer over it.
func (c *cli) buildReport() (report.Report, error) {
	records, _, err := ingest.Load(c.cfg.ActivityLogPath)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load activity log: %w", err)
	}
	params := services.ParamsFromConfig(c.cfg, c.clock.Now())
	return report.Build(records, params), nil
}

func (c *cli) writeReport(format report.Format, sections []report.Section) error {
	r, err := c.buildReport()
	if err != nil {
		return err
	}
	return report.Write(c.stdout, r, format, sections...)
}

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.runTUI(c.cfg, c.clock)
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(c.stdout, version.Info())
			return err
		},
	}
}
