package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/Bearbbcjtc/gen3-tools/internal/audit"
)

// bannerWidth is the width of the summary separator lines.
const bannerWidth = 80

// PrintSummary writes the fixed-format analysis summary to w.
func PrintSummary(w io.Writer, result *audit.Result) {
	stats := result.Summary()
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "DATA FEATURE ANALYSIS SUMMARY")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "1. Original critical features extracted: %d\n", stats.RawCritical)
	fmt.Fprintf(w, "2. Unique mapped critical features: %d\n", stats.MappedCritical)
	fmt.Fprintf(w, "3. Total features in data files: %d\n", stats.DistinctColumns)
	fmt.Fprintf(w, "4. Critical features missing from data: %d\n", stats.MissingCritical)
	fmt.Fprintf(w, "5. Critical features present in data: %d\n", stats.PresentCritical)
	fmt.Fprintf(w, "6. Critical features with coverage >= %.2f%%: %d\n", stats.Threshold*100, stats.AboveThreshold)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)
}

// PrintDetails writes a per-feature table of average coverage for the
// critical features present in the data. Averages at or above the audit
// threshold are shown in green, the rest in red.
func PrintDetails(w io.Writer, result *audit.Result) {
	features := result.Coverage.CriticalFeatures()
	if len(features) == 0 {
		fmt.Fprintln(w, "No critical feature coverage to show.")
		return
	}

	nameHeader := "Critical Feature"
	nameWidth := runewidth.StringWidth(nameHeader)
	for _, feature := range features {
		if width := runewidth.StringWidth(feature); width > nameWidth {
			nameWidth = width
		}
	}

	fmt.Fprintf(w, "%s  %s  %s\n", runewidth.FillRight(nameHeader, nameWidth), "Avg Coverage", "Files")
	for _, feature := range features {
		avg := result.Coverage.AverageCritical(feature)
		cell := fmt.Sprintf("%12s", formatPercent(avg))
		if avg >= result.Threshold {
			cell = color.Green.Sprint(cell)
		} else {
			cell = color.Red.Sprint(cell)
		}
		files := len(result.Coverage.CriticalEntries(feature))
		fmt.Fprintf(w, "%s  %s  %d\n", runewidth.FillRight(feature, nameWidth), cell, files)
	}
}
