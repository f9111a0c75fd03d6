package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"youthcouncil/internal/budget"
	"youthcouncil/internal/model"
)

// RowsPerPage bounds the expense listing section of one page.
const RowsPerPage = 20

const lineWidth = 78

// Input carries everything the renderer needs. GeneratedAt is injected by
// the caller so the data sections stay a pure function of the expense set;
// only the header line varies between runs.
type Input struct {
	Title       string
	GeneratedAt time.Time
	Summary     budget.Summary
	Categories  map[string]budget.GroupStat
	Expenses    []model.Expense
}

// Render produces the paginated tabular expense report. Identical input
// yields byte-identical output.
func Render(in Input) string {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center(in.Title) + "\n")
	b.WriteString(center("Generated: "+in.GeneratedAt.Format("2006-01-02 15:04")) + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-24s %10d\n", "Expenses recorded", in.Summary.ExpenseCount)
	fmt.Fprintf(&b, "%-24s %10s\n", "Allocated budget", in.Summary.Allocated.StringFixed(2))
	fmt.Fprintf(&b, "%-24s %10s\n", "Total spent", in.Summary.Total.StringFixed(2))
	remaining := in.Summary.Remaining.StringFixed(2)
	if in.Summary.Overspent {
		fmt.Fprintf(&b, "%-24s %10s  (OVER BUDGET)\n", "Remaining", remaining)
	} else {
		fmt.Fprintf(&b, "%-24s %10s\n", "Remaining", remaining)
	}
	b.WriteString("\n")

	b.WriteString("BY CATEGORY\n")
	b.WriteString(thin + "\n")
	if len(in.Categories) == 0 {
		b.WriteString("No expenses match the selected filters.\n\n")
	} else {
		keys := make([]string, 0, len(in.Categories))
		for k := range in.Categories {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(&b, "%-28s %6s %14s %9s\n", "Category", "Count", "Total", "Share")
		for _, k := range keys {
			g := in.Categories[k]
			fmt.Fprintf(&b, "%-28s %6d %14s %8s%%\n",
				k, g.Count, g.Total.StringFixed(2), g.Percentage.StringFixed(2))
		}
		b.WriteString("\n")
	}

	b.WriteString("EXPENSES\n")
	b.WriteString(thin + "\n")
	if len(in.Expenses) == 0 {
		b.WriteString("No expenses match the selected filters.\n")
		return b.String()
	}

	pages := (len(in.Expenses) + RowsPerPage - 1) / RowsPerPage
	for page := 0; page < pages; page++ {
		start := page * RowsPerPage
		end := start + RowsPerPage
		if end > len(in.Expenses) {
			end = len(in.Expenses)
		}
		fmt.Fprintf(&b, "Page %d of %d\n", page+1, pages)
		fmt.Fprintf(&b, "%-12s %s %s %14s\n", "Date", pad("Description", 30), pad("Category", 18), "Amount")
		for _, e := range in.Expenses[start:end] {
			fmt.Fprintf(&b, "%-12s %s %s %14s\n",
				e.Date.Format("2006-01-02"), pad(e.Description, 30), pad(e.Category, 18),
				e.Amount.StringFixed(2))
		}
		if page < pages-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-62s %14s\n", "TOTAL", budget.TotalExpenses(in.Expenses).StringFixed(2))

	return b.String()
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= lineWidth {
		return s
	}
	return strings.Repeat(" ", (lineWidth-n)/2) + s
}

// clip shortens s to at most max characters. It counts and cuts in runes,
// never mid-sequence, so clipped non-ASCII text stays valid UTF-8.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// pad left-aligns s in a field of width characters. Width is counted in
// runes; byte-counting %-Ns would misalign columns for non-ASCII text.
func pad(s string, width int) string {
	s = clip(s, width)
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
