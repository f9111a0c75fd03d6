package service

import (
	"fmt"
	"path"
	"time"

	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/budget"
	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
	"youthcouncil/pkg/validator"
)

func programResponse(p *model.Program) dto.ProgramResponse {
	return dto.ProgramResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Date:          p.Date,
		TimeWindow:    p.TimeWindow,
		Location:      p.Location,
		Budget:        p.Budget,
		Status:        p.Status,
		AttachmentURL: p.AttachmentURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (s *service) CreateProgram(ctx *ginext.Context) {
	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	status := req.Status
	if status == "" {
		status = model.ProgramPlanning
	}

	program := &model.Program{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		TimeWindow:  req.TimeWindow,
		Location:    req.Location,
		Budget:      req.Budget,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	id, err := s.repo.CreateProgram(ctx, program)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create program in DB")
		dto.InternalServerError(ctx)
		return
	}

	program.ID = id
	s.log.Info().Int64("program_id", id).Msg("program created")
	dto.SuccessCreatedResponse(ctx, programResponse(program))
}

func (s *service) GetProgram(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	program, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		dto.ProgramNotFoundError(ctx)
		return
	}

	count, err := s.repo.CountRegistrations(ctx, programID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to count registrations")
		dto.InternalServerError(ctx)
		return
	}

	expenses, err := s.repo.GetAllExpenses(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get expenses")
		dto.InternalServerError(ctx)
		return
	}
	own := budget.Apply(expenses, budget.Filter{ProgramID: programID})
	summary := budget.Summarize(program.Budget, own)

	dto.SuccessResponse(ctx, dto.ProgramInfoResponse{
		ProgramResponse:   programResponse(program),
		RegistrationCount: count,
		TotalExpenses:     summary.Total,
		RemainingBudget:   summary.Remaining,
		OverBudget:        summary.Overspent,
	})
}

func (s *service) GetAllPrograms(ctx *ginext.Context) {
	programs, err := s.repo.GetAllPrograms(ctx)
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.ProgramResponse, 0, len(programs))
	for i := range programs {
		resp = append(resp, programResponse(&programs[i]))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) UpdateProgram(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	program := &model.Program{
		ID:          programID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		TimeWindow:  req.TimeWindow,
		Location:    req.Location,
		Budget:      req.Budget,
		Status:      req.Status,
	}
	if program.Status == "" {
		program.Status = model.ProgramPlanning
	}

	if err := s.repo.UpdateProgram(ctx, program); err != nil {
		if err == registration.ErrProgramNotFound {
			dto.ProgramNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update program")
		dto.InternalServerError(ctx)
		return
	}

	updated, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		dto.ProgramNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, programResponse(updated))
}

func (s *service) DeleteProgram(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := s.lifecycle.RemoveProgram(ctx, programID); err != nil {
		if err == registration.ErrProgramNotFound {
			dto.ProgramNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete program")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("program_id", programID).Msg("program deleted with dependents")
	dto.SuccessResponse(ctx, nil)
}

func (s *service) UploadAttachment(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if s.uploads == nil {
		dto.BadResponseError(ctx, dto.AttachmentUnavailable, "File storage is not configured")
		return
	}

	if _, err := s.repo.GetProgram(ctx, programID); err != nil {
		dto.ProgramNotFoundError(ctx)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Missing file field")
		return
	}

	file, err := header.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open uploaded file")
		dto.InternalServerError(ctx)
		return
	}
	defer file.Close()

	name := fmt.Sprintf("programs/%d/%d%s", programID, time.Now().UnixNano(), path.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	url, err := s.uploads.Upload(name, file, contentType)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to upload attachment")
		dto.InternalServerError(ctx)
		return
	}

	if err := s.repo.SetProgramAttachment(ctx, programID, url); err != nil {
		s.log.Error().Err(err).Msg("failed to store attachment URL")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("program_id", programID).Str("url", url).Msg("attachment uploaded")
	dto.SuccessCreatedResponse(ctx, dto.AttachmentResponse{URL: url})
}
