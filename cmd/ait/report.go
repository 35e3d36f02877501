package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/j-veylop/activity-insights-tui/internal/analyzers"
	"github.com/j-veylop/activity-insights-tui/internal/report"
	"github.com/j-veylop/activity-insights-tui/internal/ui/styles"
)

func parseSections(names []string) ([]report.Section, error) {
	all := report.AllSections()
	var out []report.Section
	for _, n := range names {
		s := report.Section(strings.ToLower(strings.TrimSpace(n)))
		if !slices.Contains(all, s) {
			valid := make([]string, len(all))
			for i, a := range all {
				valid[i] = string(a)
			}
			return nil, fmt.Errorf("unknown section %q (want %s)", n, strings.Join(valid, ", "))
		}
		out = append(out, s)
	}
	return out, nil
}

func newReportCmd(c *cli) *cobra.Command {
	var (
		format   string
		sections []string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the activity report",
		Example: `  ait report --log activity.csv
  ait report --format json --section overview --section dev
  ait report --days weekday --range 7 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			secs, err := parseSections(sections)
			if err != nil {
				return err
			}
			return c.writeReport(f, secs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringSliceVarP(&sections, "section", "s", nil, "sections to include (default all)")

	return cmd
}

func newForecastCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the seven-day forecast",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			r, err := c.buildReport()
			if err != nil {
				return err
			}
			if f == report.FormatText {
				_, err = io.WriteString(c.stdout, report.RenderForecast(r.Forecast))
				return err
			}
			return report.Write(c.stdout, r, f, report.SectionForecast)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")

	return cmd
}

func newAnomaliesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies",
		Short: "List days with unusual screen time",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			r, err := c.buildReport()
			if err != nil {
				return err
			}
			writeAnomalies(c.stdout, r.Anomalies)
			return nil
		},
	}
}

func writeAnomalies(w io.Writer, a analyzers.AnomalyReport) {
	fmt.Fprintf(w, "%d days analyzed, mean %.1fh, std dev %.1fh, threshold %.1f sigma\n",
		a.DaysAnalyzed, a.Mean, a.StdDev, a.Threshold)
	if len(a.Anomalies) == 0 {
		fmt.Fprintln(w, styles.SuccessTextStyle.Render("No unusual days."))
		return
	}
	for _, an := range a.Anomalies {
		style := styles.InfoTextStyle
		if an.Type == analyzers.AnomalyHigh {
			style = styles.AnomalyHighStyle
		}
		fmt.Fprintf(w, "%s %s\n", style.Render(fmt.Sprintf("%s %-9s %5.1fh %+4.0f%% %s",
			an.DateLabel, an.DayName, an.TotalHours, an.Deviation, an.Type)), an.Insight)
	}
}
