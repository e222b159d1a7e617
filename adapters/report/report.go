// Package report renders completed analysis runs as markdown summaries and
// HTML pages. The report is a presentation of a Result; it recomputes
// nothing.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"armbench/domain/core"
	"armbench/internal"
	"armbench/internal/analysis"
	"armbench/internal/errors"
)

// Options names the two sides of the comparison and titles the document
type Options struct {
	Title         string
	BaselineName  string
	CandidateName string
}

// PerformanceOptions labels the performance comparison report
func PerformanceOptions() Options {
	return Options{
		Title:         "Gearless Robotic Arm Performance Analysis",
		BaselineName:  "Traditional",
		CandidateName: "Gearless",
	}
}

// StructuralOptions labels the structural analysis report
func StructuralOptions() Options {
	return Options{
		Title:         "Gearless Robotic Arm Structural Analysis",
		BaselineName:  "Traditional Benchmark",
		CandidateName: "Gearless",
	}
}

// Builder assembles markdown reports from analysis results
type Builder struct {
	logger *internal.Logger
	now    func() time.Time
}

// NewBuilder creates a builder
func NewBuilder() *Builder {
	return &Builder{logger: internal.DefaultLogger, now: time.Now}
}

// Build renders one result as a markdown document: the cross-design
// comparison first, then each aggregate breakdown, then the key findings.
func (b *Builder) Build(res *analysis.Result, opts Options) string {
	var md strings.Builder

	reportID := core.NewReportID()
	fmt.Fprintf(&md, "# %s\n\n", opts.Title)
	fmt.Fprintf(&md, "Report %s for run %s, generated %s.\n\n",
		reportID, res.RunID, b.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&md, "Dataset: %d records after cleaning.\n\n", res.Table.RowCount())

	if res.Comparison != nil {
		b.writeComparison(&md, res.Comparison, opts)
	}
	for _, group := range res.Groups {
		b.writeGroup(&md, group)
	}
	if res.Comparison != nil {
		b.writeFindings(&md, res.Comparison, opts)
	}

	b.logger.Info("report: built %s for run %s", reportID, res.RunID)
	return md.String()
}

func (b *Builder) writeComparison(md *strings.Builder, cmp *analysis.Comparison, opts Options) {
	fmt.Fprintf(md, "## %s vs %s\n\n", opts.CandidateName, opts.BaselineName)
	if len(cmp.Entries) == 0 {
		md.WriteString("No shared metrics to compare.\n\n")
		return
	}
	fmt.Fprintf(md, "| Metric | %s | %s | Improvement |\n", opts.BaselineName, opts.CandidateName)
	md.WriteString("|---|---|---|---|\n")
	for _, e := range cmp.Entries {
		fmt.Fprintf(md, "| %s | %.3f | %.3f | %+.1f%% |\n",
			titleCase(e.Metric), e.Baseline, e.Candidate, e.ImprovementPct)
	}
	md.WriteString("\n")
}

func (b *Builder) writeGroup(md *strings.Builder, group analysis.GroupResult) {
	fmt.Fprintf(md, "## %s\n\n", titleCase(group.Name))
	if len(group.Rows) == 0 {
		md.WriteString("No groups present in the dataset.\n\n")
		return
	}

	statCols := statColumns(group.Rows)
	header := append(append([]string{}, group.GroupBy...), "count")
	header = append(header, statCols...)

	md.WriteString("| " + strings.Join(mapTitle(header), " | ") + " |\n")
	md.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, row := range group.Rows {
		cells := make([]string, 0, len(header))
		for _, k := range group.GroupBy {
			cells = append(cells, row.Key[k])
		}
		cells = append(cells, fmt.Sprintf("%d", row.Count))
		for _, s := range statCols {
			if v, ok := row.Stats[s]; ok {
				cells = append(cells, fmt.Sprintf("%.3f", v))
			} else {
				cells = append(cells, "-")
			}
		}
		md.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	md.WriteString("\n")
}

// writeFindings turns the comparison entries into a bullet summary, leading
// with the largest improvement
func (b *Builder) writeFindings(md *strings.Builder, cmp *analysis.Comparison, opts Options) {
	md.WriteString("## Key Findings\n\n")

	if len(cmp.Entries) == 0 {
		md.WriteString("No shared metrics to compare.\n\n")
		return
	}

	best := cmp.Entries[0]
	wins := 0
	for _, e := range cmp.Entries {
		if e.ImprovementPct > best.ImprovementPct {
			best = e
		}
		if e.ImprovementPct > 0 {
			wins++
		}
	}

	fmt.Fprintf(md, "- The %s design improves on the %s baseline in %d of %d metrics.\n",
		strings.ToLower(opts.CandidateName), strings.ToLower(opts.BaselineName), wins, len(cmp.Entries))
	fmt.Fprintf(md, "- Largest gain: %s at %+.1f%% (%.3f vs %.3f).\n",
		titleCase(best.Metric), best.ImprovementPct, best.Candidate, best.Baseline)
	for _, e := range cmp.Entries {
		if e.ImprovementPct < 0 {
			fmt.Fprintf(md, "- Regression: %s at %+.1f%%.\n", titleCase(e.Metric), e.ImprovementPct)
		}
	}
	md.WriteString("\n")
}

// WriteMarkdown persists a markdown report to disk
func (b *Builder) WriteMarkdown(path, md string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.IOError("creating report directory", err)
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return errors.IOError("writing report "+path, err)
	}
	b.logger.Info("report: wrote %s", path)
	return nil
}

// statColumns collects the union of statistic names across rows, sorted
func statColumns(rows []analysis.GroupRow) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for s := range row.Stats {
			seen[s] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for s := range seen {
		cols = append(cols, s)
	}
	sort.Strings(cols)
	return cols
}

// titleCase renders a snake_case identifier as a display label
func titleCase(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func mapTitle(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = titleCase(n)
	}
	return out
}
