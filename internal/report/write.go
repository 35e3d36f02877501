package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// Section names a part of the report.
type Section string

// Report sections in display order.
const (
	SectionOverview Section = "overview"
	SectionPatterns Section = "patterns"
	SectionSessions Section = "sessions"
	SectionApps     Section = "apps"
	SectionForecast Section = "forecast"
	SectionDev      Section = "dev"
)

// AllSections lists every section in display order.
func AllSections() []Section {
	return []Section{SectionOverview, SectionPatterns, SectionSessions, SectionApps, SectionForecast, SectionDev}
}

// sectionData returns the structured payload of one section.
func (r Report) sectionData(s Section) any {
	switch s {
	case SectionOverview:
		return map[string]any{"summary": r.Summary, "daily": r.Daily}
	case SectionPatterns:
		return map[string]any{"anomalies": r.Anomalies, "consistency": r.Consistency, "insights": r.Insights}
	case SectionSessions:
		return map[string]any{
			"blocks": r.Blocks, "blockStats": r.BlockStats,
			"transitions": r.Transitions, "transitionStats": r.TransitionStats,
			"contextSwitches": r.ContextSwitches, "sessionLengths": r.SessionLengths,
		}
	case SectionApps:
		return r.Loyalty
	case SectionForecast:
		return r.Forecast
	case SectionDev:
		return map[string]any{"techStack": r.TechStack, "velocity": r.Velocity, "devStats": r.DevStats}
	default:
		return nil
	}
}

// payload is the whole report, or only the named sections keyed by name.
func (r Report) payload(sections []Section) any {
	if len(sections) == 0 {
		return r
	}
	if len(sections) == 1 {
		return r.sectionData(sections[0])
	}
	out := make(map[string]any, len(sections))
	for _, s := range sections {
		out[string(s)] = r.sectionData(s)
	}
	return out
}

// Write encodes the report to w. With no sections the whole report is
// written.
func Write(w io.Writer, r Report, format Format, sections ...Section) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.payload(sections)); err != nil {
			return fmt.Errorf("failed to encode report as json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.payload(sections)); err != nil {
			return fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml: %w", err)
		}
		return nil
	case FormatText, "":
		if len(sections) == 0 {
			sections = AllSections()
		}
		_, err := io.WriteString(w, RenderText(r, sections...))
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
