package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/carstats/internal/parser"
	"github.com/KaramelBytes/carstats/internal/stats"
	"github.com/KaramelBytes/carstats/internal/utils"
)

// Report summarizes one parsing pass and the statistics over its records.
type Report struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Source      string          `json:"source" yaml:"source"`
	Lines       int             `json:"lines" yaml:"lines"`
	Parsed      int             `json:"parsed" yaml:"parsed"`
	Skipped     int             `json:"skipped" yaml:"skipped"`
	SkipReasons map[string]int  `json:"skip_reasons,omitempty" yaml:"skip_reasons,omitempty"`
	Cols        []ColumnSummary `json:"columns" yaml:"columns"`
	Corr        *stats.Matrix   `json:"correlations,omitempty" yaml:"correlations,omitempty"`
	Notes       []string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ColumnSummary captures the statistics of one numeric column.
type ColumnSummary struct {
	Name          string `json:"name" yaml:"name"`
	stats.Summary `yaml:",inline"`
}

// now is swapped in tests.
var now = time.Now

// Build computes the report for ds. A nil or empty dataset yields a report
// with zero counts and no correlations.
func Build(ds *parser.Dataset) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now().UTC(),
	}
	if ds == nil {
		return rep
	}
	rep.Source = ds.Source
	rep.Lines = ds.Lines
	rep.Parsed = ds.Len()
	rep.Skipped = ds.Skipped
	if len(ds.SkipReasons) > 0 {
		rep.SkipReasons = make(map[string]int, len(ds.SkipReasons))
		for k, v := range ds.SkipReasons {
			rep.SkipReasons[string(k)] = v
		}
	}

	cols := ds.Columns()
	for i, name := range parser.ColumnNames {
		sum := stats.Summarize(cols[i])
		rep.Cols = append(rep.Cols, ColumnSummary{Name: name, Summary: sum})
		if sum.Count > 1 && sum.StdDev == 0 {
			rep.Notes = append(rep.Notes, fmt.Sprintf("%s has zero variance; its correlations are reported as 0", name))
		}
	}
	if rep.Parsed == 0 {
		rep.Notes = append(rep.Notes, "no valid rows; statistics are reported as 0")
		return rep
	}
	m := stats.Correlations(parser.ColumnNames, cols)
	rep.Corr = &m
	return rep
}

// Column returns the summary for a named column.
func (r *Report) Column(name string) (ColumnSummary, bool) {
	for _, c := range r.Cols {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// Render formats the report as text, markdown, json, or yaml.
func (r *Report) Render(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return r.Text(), nil
	case "markdown", "md":
		return r.Markdown(), nil
	case "json":
		return r.JSON()
	case "yaml", "yml":
		return r.YAML()
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown|json|yaml)", format)
	}
}

// Text renders the plain console summary.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows parsed: %d\n", r.Parsed)
	fmt.Fprintf(&b, "Rows skipped: %d\n", r.Skipped)
	if r.Parsed == 0 {
		return b.String()
	}
	b.WriteString("\n")
	for _, c := range r.Cols {
		fmt.Fprintf(&b, "%-10s mean=%.4f std=%.4f min=%.4g max=%.4g\n", c.Name, c.Mean, c.StdDev, c.Min, c.Max)
	}
	if r.Corr != nil {
		b.WriteString("\nPearson correlation:\n")
		for _, p := range r.Corr.Pairs() {
			fmt.Fprintf(&b, "  %s ~ %s: %.4f\n", p.A, p.B, p.R)
		}
	}
	return b.String()
}

// Markdown renders a compact report suitable for standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", r.RunID))
	b.WriteString(fmt.Sprintf("Rows: %d parsed, %d skipped\n", r.Parsed, r.Skipped))
	if len(r.SkipReasons) > 0 {
		keys := make([]string, 0, len(r.SkipReasons))
		for k := range r.SkipReasons {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%d", k, r.SkipReasons[k]))
		}
		b.WriteString(fmt.Sprintf("Skip reasons: %s\n", strings.Join(parts, ", ")))
	}

	b.WriteString("\n[COLUMNS]\n")
	b.WriteString("| column | count | mean | std | min | max |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, c := range r.Cols {
		b.WriteString(fmt.Sprintf("| %s | %d | %.4g | %.4g | %.4g | %.4g |\n", c.Name, c.Count, c.Mean, c.StdDev, c.Min, c.Max))
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Corr.Pairs() {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(r.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range r.Notes {
			b.WriteString("- ")
			b.WriteString(n)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() (string, error) {
	b, err := utils.PrettyJSON(r)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// YAML renders the report as YAML.
func (r *Report) YAML() (string, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	return string(b), nil
}
