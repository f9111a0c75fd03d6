package report

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youthcouncil/internal/budget"
	"youthcouncil/internal/model"
)

func sampleInput() Input {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		{ProgramID: 1, Description: "Sports equipment", Category: "Supplies",
			Amount: decimal.RequireFromString("3000.00"), Date: day},
		{ProgramID: 1, Description: "Hall rental", Category: "Venue",
			Amount: decimal.RequireFromString("4500.00"), Date: day.AddDate(0, 0, 2)},
	}
	allocated := decimal.RequireFromString("10000.00")
	return Input{
		Title:       "Expense Report - Summer Camp",
		GeneratedAt: time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC),
		Summary:     budget.Summarize(allocated, expenses),
		Categories:  budget.GroupBy(expenses, budget.ByCategory),
		Expenses:    expenses,
	}
}

func TestRenderDeterministic(t *testing.T) {
	in := sampleInput()
	first := Render(in)
	second := Render(in)
	assert.Equal(t, first, second, "same input must produce byte-identical output")
}

func TestRenderOnlyHeaderVariesWithTimestamp(t *testing.T) {
	in := sampleInput()
	first := Render(in)

	in.GeneratedAt = in.GeneratedAt.Add(48 * time.Hour)
	second := Render(in)

	firstLines := strings.Split(first, "\n")
	secondLines := strings.Split(second, "\n")
	require.Equal(t, len(firstLines), len(secondLines))

	var diff int
	for i := range firstLines {
		if firstLines[i] != secondLines[i] {
			diff++
			assert.Contains(t, firstLines[i], "Generated:")
		}
	}
	assert.Equal(t, 1, diff, "only the Generated line may differ")
}

func TestRenderAmountsTwoDecimals(t *testing.T) {
	out := Render(sampleInput())

	assert.Contains(t, out, "3000.00")
	assert.Contains(t, out, "4500.00")
	assert.Contains(t, out, "7500.00")  // total spent
	assert.Contains(t, out, "2500.00")  // remaining
	assert.Contains(t, out, "10000.00") // allocated
	assert.NotContains(t, out, "OVER BUDGET")
}

func TestRenderOverspentMarker(t *testing.T) {
	in := sampleInput()
	in.Summary = budget.Summarize(decimal.RequireFromString("5000.00"), in.Expenses)
	out := Render(in)

	assert.Contains(t, out, "OVER BUDGET")
	assert.Contains(t, out, "-2500.00")
}

func TestRenderCategoriesSorted(t *testing.T) {
	out := Render(sampleInput())

	supplies := strings.Index(out, "Supplies")
	venue := strings.Index(out, "Venue")
	require.NotEqual(t, -1, supplies)
	require.NotEqual(t, -1, venue)
	assert.Less(t, supplies, venue, "categories must be listed alphabetically")
}

func TestRenderNoData(t *testing.T) {
	in := Input{
		Title:       "Expense Report - All Programs",
		GeneratedAt: time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC),
		Summary:     budget.Summarize(decimal.Zero, nil),
		Categories:  budget.GroupBy(nil, budget.ByCategory),
	}
	out := Render(in)

	assert.Contains(t, out, "No expenses match the selected filters.")
	assert.NotContains(t, out, "Page 1")
	assert.NotContains(t, out, "TOTAL")
}

func TestRenderPagination(t *testing.T) {
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	var expenses []model.Expense
	for i := 0; i < RowsPerPage*2+5; i++ {
		expenses = append(expenses, model.Expense{
			ProgramID:   1,
			Description: "Item",
			Category:    "Supplies",
			Amount:      decimal.RequireFromString("1.00"),
			Date:        day.AddDate(0, 0, i),
		})
	}
	in := sampleInput()
	in.Expenses = expenses
	out := Render(in)

	assert.Contains(t, out, "Page 1 of 3")
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "Page 3 of 3")
	assert.NotContains(t, out, "Page 4")

	// trailing total row covers the entire listing
	assert.Contains(t, out, "45.00")
}

func TestRenderSinglePageWhenUnderLimit(t *testing.T) {
	out := Render(sampleInput())
	assert.Contains(t, out, "Page 1 of 1")
	assert.NotContains(t, out, "Page 2")
}

func TestClipLongValues(t *testing.T) {
	long := strings.Repeat("x", 40)
	clipped := clip(long, 30)
	assert.Len(t, clipped, 30)
	assert.True(t, strings.HasSuffix(clipped, "..."))
	assert.Equal(t, "short", clip("short", 30))
}

func TestClipCutsOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("спортивное снаряжение", 3)
	clipped := clip(long, 30)

	assert.True(t, utf8.ValidString(clipped), "clipped value must stay valid UTF-8")
	assert.Equal(t, 30, utf8.RuneCountInString(clipped))
	assert.True(t, strings.HasSuffix(clipped, "..."))
}

func TestPadCountsRunes(t *testing.T) {
	assert.Equal(t, 10, utf8.RuneCountInString(pad("спорт", 10)))
	assert.Equal(t, 10, utf8.RuneCountInString(pad("abc", 10)))
	assert.Equal(t, 10, utf8.RuneCountInString(pad(strings.Repeat("ж", 15), 10)))
}

func TestRenderNonASCIIExpenses(t *testing.T) {
	day := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{
		{ProgramID: 1, Description: strings.Repeat("спортивное снаряжение", 3),
			Category: "Снаряжение", Amount: decimal.RequireFromString("120.00"), Date: day},
		{ProgramID: 1, Description: "Hall rental", Category: "Venue",
			Amount: decimal.RequireFromString("80.00"), Date: day},
	}
	in := Input{
		Title:       "Expense Report - Летний лагерь",
		GeneratedAt: time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC),
		Summary:     budget.Summarize(decimal.RequireFromString("500.00"), expenses),
		Categories:  budget.GroupBy(expenses, budget.ByCategory),
		Expenses:    expenses,
	}
	out := Render(in)

	require.True(t, utf8.ValidString(out), "rendered report must be valid UTF-8")

	// the amount column lines up regardless of description alphabet
	var amountCols []int
	for _, line := range strings.Split(out, "\n") {
		if strings.HasSuffix(line, "120.00") || strings.HasSuffix(line, "80.00") {
			amountCols = append(amountCols, utf8.RuneCountInString(line))
		}
	}
	require.Len(t, amountCols, 2)
	assert.Equal(t, amountCols[0], amountCols[1], "rows must align on rune width")
}
