// Package report renders the end-of-run summary.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"organizer/internal/organize"
)

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SummaryLine formats the final human-readable line of a run.
func SummaryLine(summary *organize.Summary) string {
	verb := "Moved"
	if summary.DryRun {
		verb = "Would move"
	}
	return fmt.Sprintf("%s %d file(s).", verb, summary.Moved())
}

// Print writes the run summary to w. When tty is set a per-stage table is
// rendered above the summary line; otherwise output stays line-oriented for
// pipes and logs.
func Print(w io.Writer, summary *organize.Summary, tty bool) {
	if tty && len(summary.Stages) > 0 {
		fmt.Fprintln(w, stageTable(summary))
	}
	fmt.Fprintln(w, SummaryLine(summary))
}

func stageTable(summary *organize.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Moved", "Skipped", "Failed"})
	for _, stage := range summary.Stages {
		tw.AppendRow(table.Row{
			stage.Stage,
			strconv.Itoa(stage.Moved),
			strconv.Itoa(stage.Skipped),
			strconv.Itoa(stage.Failed),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
