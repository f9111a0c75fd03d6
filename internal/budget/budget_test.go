package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthcouncil/internal/model"
)

func expense(programID int64, amount string, category string, date time.Time) model.Expense {
	return model.Expense{
		ProgramID: programID,
		Amount:    decimal.RequireFromString(amount),
		Category:  category,
		Date:      date,
	}
}

func TestTotalExpenses(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "3000.00", "Supplies", day),
		expense(1, "4500.00", "Venue", day),
	}

	total := TotalExpenses(expenses)
	assert.Equal(t, "7500.00", total.StringFixed(2))
}

func TestTotalExpensesNoDrift(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	// 0.1 + 0.2 style amounts that drift under float math
	var expenses []model.Expense
	for i := 0; i < 100; i++ {
		expenses = append(expenses, expense(1, "0.10", "Misc", day))
	}

	total := TotalExpenses(expenses)
	assert.Equal(t, "10.00", total.StringFixed(2))
}

func TestRemainingBudgetScenario(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "3000.00", "Supplies", day),
		expense(1, "4500.00", "Venue", day),
	}
	allocated := decimal.RequireFromString("10000.00")

	remaining := RemainingBudget(allocated, expenses)
	assert.Equal(t, "2500.00", remaining.StringFixed(2))
}

func TestRemainingBudgetIdempotent(t *testing.T) {
	day := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "19.99", "Food", day),
		expense(1, "5.01", "Food", day),
	}
	allocated := decimal.RequireFromString("100.00")

	first := RemainingBudget(allocated, expenses)
	second := RemainingBudget(allocated, expenses)
	assert.True(t, first.Equal(second), "expected identical results for identical input")
	assert.Equal(t, "75.00", second.StringFixed(2))
}

func TestRemainingBudgetMayGoNegative(t *testing.T) {
	day := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{expense(1, "150.00", "Venue", day)}
	allocated := decimal.RequireFromString("100.00")

	remaining := RemainingBudget(allocated, expenses)
	assert.True(t, remaining.IsNegative())

	summary := Summarize(allocated, expenses)
	assert.True(t, summary.Overspent)
	assert.Equal(t, "-50.00", summary.Remaining.StringFixed(2))
}

func TestTimeframeMatchesByCalendarComponents(t *testing.T) {
	tests := []struct {
		name string
		tf   Timeframe
		date time.Time
		want bool
	}{
		{"all time matches anything", AllTime(), time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"year match", YearOf(2024), time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC), true},
		{"year mismatch", YearOf(2024), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"month match first day", MonthOf(time.May, 2024), time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), true},
		{"month match last day", MonthOf(time.May, 2024), time.Date(2024, time.May, 31, 23, 0, 0, 0, time.UTC), true},
		{"same month wrong year", MonthOf(time.May, 2024), time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC), false},
		{"adjacent month", MonthOf(time.May, 2024), time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tf.Matches(tt.date))
		})
	}
}

func TestFilterByProgramCategoryTimeframe(t *testing.T) {
	may := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "10.00", "Food", may),
		expense(1, "20.00", "Venue", may),
		expense(2, "30.00", "Food", may),
		expense(1, "40.00", "Food", june),
	}

	got := Apply(expenses, Filter{ProgramID: 1, Category: "Food", Timeframe: MonthOf(time.May, 2024)})
	require.Len(t, got, 1)
	assert.Equal(t, "10.00", got[0].Amount.StringFixed(2))

	// empty filter keeps everything, in order
	all := Apply(expenses, Filter{})
	assert.Len(t, all, 4)
}

func TestGroupByCategory(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "75.00", "Food", day),
		expense(1, "25.00", "Venue", day),
		expense(2, "25.00", "Food", day),
	}

	groups := GroupBy(expenses, ByCategory)
	require.Len(t, groups, 2)

	food := groups["Food"]
	assert.Equal(t, 2, food.Count)
	assert.Equal(t, "100.00", food.Total.StringFixed(2))
	assert.Equal(t, "80.00", food.Percentage.StringFixed(2))

	venue := groups["Venue"]
	assert.Equal(t, 1, venue.Count)
	assert.Equal(t, "20.00", venue.Percentage.StringFixed(2))
}

func TestGroupByProgram(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(7, "10.00", "Food", day),
		expense(8, "30.00", "Food", day),
	}

	groups := GroupBy(expenses, ByProgram)
	require.Len(t, groups, 2)
	assert.Equal(t, "25.00", groups["7"].Percentage.StringFixed(2))
	assert.Equal(t, "75.00", groups["8"].Percentage.StringFixed(2))
}

func TestGroupByEmptySetNeverDividesByZero(t *testing.T) {
	groups := GroupBy(nil, ByCategory)
	assert.Empty(t, groups)
}

func TestGroupByZeroAmountsReportZeroPercent(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		expense(1, "0.00", "Food", day),
		expense(1, "0.00", "Venue", day),
	}

	groups := GroupBy(expenses, ByCategory)
	require.Len(t, groups, 2)
	for k, g := range groups {
		assert.Equal(t, "0.00", g.Percentage.StringFixed(2), "group %s", k)
	}
}

func TestAllocatedTotal(t *testing.T) {
	programs := []model.Program{
		{Budget: decimal.RequireFromString("1000.00")},
		{Budget: decimal.RequireFromString("2500.50")},
	}
	assert.Equal(t, "3500.50", AllocatedTotal(programs).StringFixed(2))
}
