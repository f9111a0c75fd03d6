package service

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/budget"
	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
	"youthcouncil/internal/report"
	"youthcouncil/internal/repo"
	"youthcouncil/pkg/validator"
)

func expenseResponse(e *model.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		ProgramID:   e.ProgramID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    e.Category,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// parseExpenseFilter reads program_id, category, month and year query
// parameters. A month without a year means "that month of the current year";
// a year alone matches the whole year; nothing means all time.
func parseExpenseFilter(ctx *ginext.Context) (budget.Filter, error) {
	var f budget.Filter

	if raw := ctx.Query("program_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("invalid program_id")
		}
		f.ProgramID = id
	}
	f.Category = ctx.Query("category")

	year := 0
	if raw := ctx.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 9999 {
			return f, fmt.Errorf("invalid year")
		}
		year = y
	}
	if raw := ctx.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return f, fmt.Errorf("invalid month")
		}
		if year == 0 {
			year = time.Now().Year()
		}
		f.Timeframe = budget.MonthOf(time.Month(m), year)
		return f, nil
	}
	if year != 0 {
		f.Timeframe = budget.YearOf(year)
	}
	return f, nil
}

func (s *service) CreateExpense(ctx *ginext.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if _, err := s.repo.GetProgram(ctx, req.ProgramID); err != nil {
		dto.ProgramNotFoundError(ctx)
		return
	}

	expense := &model.Expense{
		ProgramID:   req.ProgramID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		Notes:       req.Notes,
		CreatedAt:   time.Now(),
	}

	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create expense in DB")
		dto.InternalServerError(ctx)
		return
	}

	expense.ID = id
	s.log.Info().Int64("expense_id", id).Int64("program_id", req.ProgramID).Msg("expense recorded")
	dto.SuccessCreatedResponse(ctx, expenseResponse(expense))
}

func (s *service) GetAllExpenses(ctx *ginext.Context) {
	filter, err := parseExpenseFilter(ctx)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, err.Error())
		return
	}

	expenses, err := s.repo.GetAllExpenses(ctx)
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	filtered := budget.Apply(expenses, filter)
	resp := make([]dto.ExpenseResponse, 0, len(filtered))
	for i := range filtered {
		resp = append(resp, expenseResponse(&filtered[i]))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) UpdateExpense(ctx *ginext.Context) {
	expenseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	expense := &model.Expense{
		ID:          expenseID,
		ProgramID:   req.ProgramID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		Notes:       req.Notes,
	}

	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		if err == repo.ErrExpenseNotFound {
			dto.NotFoundError(ctx, dto.ExpenseNotFound, "Expense not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to update expense")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, expenseResponse(expense))
}

func (s *service) DeleteExpense(ctx *ginext.Context) {
	expenseID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := s.repo.DeleteExpense(ctx, expenseID); err != nil {
		if err == repo.ErrExpenseNotFound {
			dto.NotFoundError(ctx, dto.ExpenseNotFound, "Expense not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to delete expense")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, nil)
}

// loadBudgetView fetches programs and expenses, applies the filter and picks
// the allocation baseline: the selected program's budget, or the sum of every
// program's budget when no program is selected.
func (s *service) loadBudgetView(ctx *ginext.Context, filter budget.Filter) (decimal.Decimal, []model.Expense, error) {
	var allocated decimal.Decimal
	if filter.ProgramID != 0 {
		program, err := s.repo.GetProgram(ctx, filter.ProgramID)
		if err != nil {
			return decimal.Zero, nil, registration.ErrProgramNotFound
		}
		allocated = program.Budget
	} else {
		programs, err := s.repo.GetAllPrograms(ctx)
		if err != nil {
			return decimal.Zero, nil, err
		}
		allocated = budget.AllocatedTotal(programs)
	}

	expenses, err := s.repo.GetAllExpenses(ctx)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return allocated, budget.Apply(expenses, filter), nil
}

func categoryBreakdown(expenses []model.Expense) []dto.GroupStatResponse {
	groups := budget.GroupBy(expenses, budget.ByCategory)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.GroupStatResponse, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, dto.GroupStatResponse{
			Key:        k,
			Count:      g.Count,
			Total:      g.Total,
			Percentage: g.Percentage.StringFixed(2),
		})
	}
	return out
}

func (s *service) BudgetSummary(ctx *ginext.Context) {
	filter, err := parseExpenseFilter(ctx)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, err.Error())
		return
	}

	allocated, filtered, err := s.loadBudgetView(ctx, filter)
	if err != nil {
		if err == registration.ErrProgramNotFound {
			dto.ProgramNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load budget view")
		dto.InternalServerError(ctx)
		return
	}

	summary := budget.Summarize(allocated, filtered)
	dto.SuccessResponse(ctx, dto.BudgetSummaryResponse{
		ExpenseCount: summary.ExpenseCount,
		Allocated:    summary.Allocated,
		Total:        summary.Total,
		Remaining:    summary.Remaining,
		Overspent:    summary.Overspent,
		ByCategory:   categoryBreakdown(filtered),
	})
}

// BudgetReport serves the exported expense report as plain text. Only the
// generation line in the header varies between identical requests.
func (s *service) BudgetReport(ctx *ginext.Context) {
	filter, err := parseExpenseFilter(ctx)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, err.Error())
		return
	}

	title := "Expense Report - All Programs"
	if filter.ProgramID != 0 {
		program, err := s.repo.GetProgram(ctx, filter.ProgramID)
		if err != nil {
			dto.ProgramNotFoundError(ctx)
			return
		}
		title = "Expense Report - " + program.Name
	}

	allocated, filtered, err := s.loadBudgetView(ctx, filter)
	if err != nil {
		if err == registration.ErrProgramNotFound {
			dto.ProgramNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to load budget view")
		dto.InternalServerError(ctx)
		return
	}

	rendered := report.Render(report.Input{
		Title:       title,
		GeneratedAt: time.Now(),
		Summary:     budget.Summarize(allocated, filtered),
		Categories:  budget.GroupBy(filtered, budget.ByCategory),
		Expenses:    filtered,
	})
	ctx.String(200, rendered)
}
