package budget

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"youthcouncil/internal/model"
)

// Timeframe selects expenses by calendar components of their date. A zero
// Year matches every year, a zero Month matches every month. Matching is by
// component, not range arithmetic, so MonthOf(May, 2024) matches exactly the
// expenses dated inside that calendar month.
type Timeframe struct {
	Month time.Month
	Year  int
}

func AllTime() Timeframe {
	return Timeframe{}
}

func YearOf(year int) Timeframe {
	return Timeframe{Year: year}
}

func MonthOf(month time.Month, year int) Timeframe {
	return Timeframe{Month: month, Year: year}
}

func (t Timeframe) Matches(date time.Time) bool {
	if t.Year != 0 && date.Year() != t.Year {
		return false
	}
	if t.Month != 0 && date.Month() != t.Month {
		return false
	}
	return true
}

// Filter narrows an expense set. Zero values mean "no restriction".
type Filter struct {
	ProgramID int64
	Category  string
	Timeframe Timeframe
}

func (f Filter) matches(e model.Expense) bool {
	if f.ProgramID != 0 && e.ProgramID != f.ProgramID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return f.Timeframe.Matches(e.Date)
}

// Apply returns the expenses matching the filter, preserving input order.
func Apply(expenses []model.Expense, f Filter) []model.Expense {
	out := make([]model.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// TotalExpenses sums expense amounts exactly. Pure function of its input.
func TotalExpenses(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// AllocatedTotal sums program budgets for the all-programs view.
func AllocatedTotal(programs []model.Program) decimal.Decimal {
	total := decimal.Zero
	for _, p := range programs {
		total = total.Add(p.Budget)
	}
	return total
}

// RemainingBudget is allocated minus total expenses. A negative result is a
// warning condition for display, never a blocking one.
func RemainingBudget(allocated decimal.Decimal, expenses []model.Expense) decimal.Decimal {
	return allocated.Sub(TotalExpenses(expenses))
}

type GroupKey string

const (
	ByCategory GroupKey = "category"
	ByProgram  GroupKey = "program"
)

type GroupStat struct {
	Count      int
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// GroupBy buckets expenses by category or program and computes per-group
// count, total and share of the overall total. When the set is empty the
// percentage denominator falls back to 1 so every group reports 0% instead
// of dividing by zero.
func GroupBy(expenses []model.Expense, key GroupKey) map[string]GroupStat {
	groups := make(map[string]GroupStat)
	for _, e := range expenses {
		k := e.Category
		if key == ByProgram {
			k = strconv.FormatInt(e.ProgramID, 10)
		}
		g := groups[k]
		g.Count++
		g.Total = g.Total.Add(e.Amount)
		groups[k] = g
	}

	denom := TotalExpenses(expenses)
	if denom.IsZero() {
		denom = decimal.NewFromInt(1)
	}
	hundred := decimal.NewFromInt(100)
	for k, g := range groups {
		g.Percentage = g.Total.Div(denom).Mul(hundred)
		groups[k] = g
	}
	return groups
}

// Summary is the stats block shown on the budget page and embedded in the
// exported report.
type Summary struct {
	ExpenseCount int
	Total        decimal.Decimal
	Allocated    decimal.Decimal
	Remaining    decimal.Decimal
	Overspent    bool
}

func Summarize(allocated decimal.Decimal, expenses []model.Expense) Summary {
	total := TotalExpenses(expenses)
	remaining := allocated.Sub(total)
	return Summary{
		ExpenseCount: len(expenses),
		Total:        total,
		Allocated:    allocated,
		Remaining:    remaining,
		Overspent:    remaining.IsNegative(),
	}
}
