package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/veloworks/veloplan/internal/analysis"
	"github.com/veloworks/veloplan/internal/report"
)

// printer formats currency and quantity figures with digit grouping.
var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// terminalWidth returns the usable output width, with a sane fallback for
// pipes and tests.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		return w
	}
	return 100
}

// truncate shortens s to maxLen runes, adding an ellipsis.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// padLeft pads s with spaces on the left so it right-aligns at width.
func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}

// nameColumnWidth sizes the first column to the longest name, bounded by the
// terminal width so the numeric columns stay visible.
func nameColumnWidth(names []string, minimum int) int {
	width := minimum
	for _, n := range names {
		if w := runewidth.StringWidth(n); w > width {
			width = w
		}
	}
	if maximum := terminalWidth() - 64; width > maximum && maximum >= minimum {
		width = maximum
	}
	return width
}

func printPlanReport(w io.Writer, r *report.PlanReport, b report.ObjectiveBreakdown) {
	names := make([]string, 0, len(r.Production))
	for _, row := range r.Production {
		names = append(names, row.BikeType)
	}
	nameW := nameColumnWidth(names, len("Bike Type"))

	fmt.Fprintln(w, strings.Repeat("=", nameW+64))
	fmt.Fprintln(w, " PRODUCTION PLAN")
	fmt.Fprintln(w, strings.Repeat("=", nameW+64))
	fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
		padRight("Bike Type", nameW),
		padLeft("Produced", 8),
		padLeft("Revenue", 12),
		padLeft("Cost", 12),
		padLeft("Profit", 12),
		padLeft("Hours", 8))
	for _, row := range r.Production {
		fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
			padRight(truncate(row.BikeType, nameW), nameW),
			padLeft(fmt.Sprintf("%d", row.Produced), 8),
			padLeft(money(row.Revenue), 12),
			padLeft(money(row.Cost), 12),
			padLeft(money(row.Profit), 12),
			padLeft(fmt.Sprintf("%.1f", row.Hours), 8))
	}
	fmt.Fprintln(w, strings.Repeat("-", nameW+64))
	fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
		padRight("TOTAL", nameW),
		padLeft(fmt.Sprintf("%d", r.TotalProduced), 8),
		padLeft(money(r.TotalRevenue), 12),
		padLeft(money(r.TotalCost), 12),
		padLeft(money(r.TotalProfit), 12),
		padLeft(fmt.Sprintf("%.1f", r.TotalHours), 8))
	fmt.Fprintln(w)

	compNames := make([]string, 0, len(r.Inventory))
	for _, row := range r.Inventory {
		compNames = append(compNames, row.Component)
	}
	compW := nameColumnWidth(compNames, len("Component"))

	fmt.Fprintln(w, " INVENTORY UTILIZATION")
	fmt.Fprintln(w, strings.Repeat("-", compW+40))
	fmt.Fprintf(w, "  %s  %s  %s  %s\n",
		padRight("Component", compW),
		padLeft("Available", 10),
		padLeft("Utilized", 10),
		padLeft("Remaining", 10))
	for _, row := range r.Inventory {
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			padRight(truncate(row.Component, compW), compW),
			padLeft(fmt.Sprintf("%.0f", row.Available), 10),
			padLeft(fmt.Sprintf("%.0f", row.Utilized), 10),
			padLeft(fmt.Sprintf("%.0f", row.Remaining), 10))
	}
	fmt.Fprintln(w)

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(w, " COMPONENT BREAKDOWN")
		fmt.Fprintln(w, strings.Repeat("-", nameW+compW+30))
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			padRight("Bike Type", nameW),
			padRight("Component", compW),
			padRight("Quality", 12),
			padLeft("Utilized", 10))
		for _, row := range r.Breakdown {
			fmt.Fprintf(w, "  %s  %s  %s  %s\n",
				padRight(truncate(row.BikeType, nameW), nameW),
				padRight(truncate(row.Component, compW), compW),
				padRight(row.Quality, 12),
				padLeft(fmt.Sprintf("%.0f", row.Utilized), 10))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, " OBJECTIVE")
	fmt.Fprintf(w, "  %s  %s\n", padRight("Profit term", 18), padLeft(money(b.Profit), 14))
	fmt.Fprintf(w, "  %s  %s\n", padRight("Waste term", 18), padLeft(money(b.Waste), 14))
	fmt.Fprintf(w, "  %s  %s\n", padRight("Time term", 18), padLeft(money(b.Time), 14))
	fmt.Fprintf(w, "  %s  %s\n", padRight("Quantity term", 18), padLeft(money(b.Quantity), 14))
	fmt.Fprintf(w, "  %s  %s\n", padRight("Objective value", 18), padLeft(money(r.Objective), 14))
}

func printSensitivityReport(w io.Writer, rows []analysis.SensitivityRow) {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.BikeType)
	}
	nameW := nameColumnWidth(names, len("Bike Type"))

	fmt.Fprintln(w, strings.Repeat("=", nameW+66))
	fmt.Fprintln(w, " DEMAND-MIX SENSITIVITY")
	fmt.Fprintln(w, strings.Repeat("=", nameW+66))
	fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
		padRight("Bike Type", nameW),
		padLeft("Level", 6),
		padLeft("Produced", 8),
		padLeft("WASP", 10),
		padLeft("Revenue", 12),
		padLeft("Profit", 12))
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(w, "  %s  %s  %s\n",
				padRight(truncate(r.BikeType, nameW), nameW),
				padLeft(fmt.Sprintf("%+.0fσ", r.Level), 6),
				"degenerate perturbation, skipped")
			continue
		}
		fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
			padRight(truncate(r.BikeType, nameW), nameW),
			padLeft(fmt.Sprintf("%+.0fσ", r.Level), 6),
			padLeft(fmt.Sprintf("%d", r.Produced), 8),
			padLeft(money(r.AdjustedWASP), 10),
			padLeft(money(r.AdjustedRevenue), 12),
			padLeft(money(r.AdjustedProfit), 12))
	}
}

func printSweepReport(w io.Writer, grids analysis.Grids, results []analysis.SweepResult) {
	labelW := len("Weights")
	for _, r := range results {
		if lw := runewidth.StringWidth(r.Label); lw > labelW {
			labelW = lw
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", labelW+66))
	fmt.Fprintln(w, " WEIGHT SWEEP")
	fmt.Fprintln(w, strings.Repeat("=", labelW+66))
	fmt.Fprintf(w, "  %d combinations, %d optimal\n\n", grids.Combinations(), len(results))
	fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
		padRight("Weights", labelW),
		padLeft("Objective", 12),
		padLeft("Bikes", 6),
		padLeft("Unused", 8),
		padLeft("Hours", 8),
		padLeft("Profit", 12))
	for _, r := range results {
		fmt.Fprintf(w, "  %s  %s  %s  %s  %s  %s\n",
			padRight(r.Label, labelW),
			padLeft(fmt.Sprintf("%.2f", r.Objective), 12),
			padLeft(fmt.Sprintf("%d", r.TotalProduced), 6),
			padLeft(fmt.Sprintf("%.0f", r.TotalUnused), 8),
			padLeft(fmt.Sprintf("%.1f", r.TotalHours), 8),
			padLeft(money(r.TotalProfit), 12))
	}
}
