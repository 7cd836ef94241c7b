// Package report renders the end-of-run summary printed by the CLI.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/bg3icon-cli/internal/pipeline"
)

type Row struct {
	Label string
	Value string
}

// Table renders rows as a two-column table between horizontal rules.
func Table(rows []Row) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := dimStyle.Render(strings.Repeat("-", labelWidth+valueWidth+3))
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// StatusLine renders the overall status in its color.
func StatusLine(s pipeline.Status) string {
	switch s {
	case pipeline.StatusSuccess:
		return okStyle.Render("All images processed successfully!")
	case pipeline.StatusNoEligibleFiles:
		return warnStyle.Render("No PNG files found in the input folder.")
	case pipeline.StatusCompletedWithErrors:
		return warnStyle.Render("Processing completed with errors.")
	default:
		return errStyle.Render("Processing failed.")
	}
}

// Summary renders the full report for a run.
func Summary(res *pipeline.Result, elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bg3icon"))
	b.WriteString("\n")

	failed := res.Failed()
	rows := []Row{
		{Label: "Source images", Value: fmt.Sprintf("%d", res.Files)},
		{Label: "Icons written", Value: fmt.Sprintf("%d", res.Succeeded())},
		{Label: "Failed units", Value: fmt.Sprintf("%d", len(failed))},
		{Label: "Output", Value: res.Job.OutputDir},
		{Label: "Time", Value: elapsed.Round(time.Millisecond).String()},
	}
	rows = append(rows, TierRows(res)...)
	b.WriteString(Table(rows))
	b.WriteString("\n")

	if len(failed) > 0 {
		b.WriteString(errStyle.Render(fmt.Sprintf("Failures (%d):", len(failed))))
		b.WriteString("\n")
		for _, o := range failed {
			b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render("-"), o.Err.Error()))
		}
	}

	b.WriteString(StatusLine(res.Status))
	b.WriteString("\n")
	return b.String()
}

// TierRows returns one row per tier with its successful icon count.
func TierRows(res *pipeline.Result) []Row {
	counts := map[string]int{}
	for _, o := range res.Outcomes {
		if o.OK() {
			counts[o.Tier]++
		}
	}
	ids := make([]string, 0, len(res.Job.Tiers))
	for _, tr := range res.Job.Tiers {
		ids = append(ids, tr.ID)
	}
	sort.Strings(ids)

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{Label: "  " + id, Value: fmt.Sprintf("%d", counts[id])})
	}
	return rows
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
