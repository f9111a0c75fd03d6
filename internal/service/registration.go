package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
	"youthcouncil/pkg/validator"
)

func registrationResponse(r *model.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:               r.ID,
		ProgramID:        r.ProgramID,
		ParticipantID:    r.ParticipantID,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		UpdatedAt:        r.UpdatedAt,
	}
}

// Apply is participant self-service: the signed-in user's participant record
// applies to the program in the path. The new registration starts Pending.
func (s *service) Apply(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	session := sessionFrom(ctx)
	if session == nil {
		dto.UnauthorizedError(ctx, "Sign in required")
		return
	}

	participant, err := s.repo.GetParticipantByUserID(ctx, session.UserID)
	if err != nil {
		dto.BadResponseError(ctx, dto.ProfileIncomplete, "Create your participant profile before applying")
		return
	}

	reg, err := s.lifecycle.Apply(ctx, participant.ID, programID)
	if err != nil {
		s.respondLifecycleError(ctx, err)
		return
	}

	s.log.Info().
		Int64("registration_id", reg.ID).
		Int64("program_id", programID).
		Int64("participant_id", participant.ID).
		Msg("registration created")
	dto.SuccessCreatedResponse(ctx, registrationResponse(reg))
}

// AdminAddRegistration registers a participant directly; the row starts
// Approved.
func (s *service) AdminAddRegistration(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AdminAddRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	reg, err := s.lifecycle.AdminAdd(ctx, req.ParticipantID, programID)
	if err != nil {
		s.respondLifecycleError(ctx, err)
		return
	}

	s.log.Info().
		Int64("registration_id", reg.ID).
		Int64("program_id", programID).
		Msg("participant added by admin")
	dto.SuccessCreatedResponse(ctx, registrationResponse(reg))
}

// SetRegistrationStatus is the admin status change. It rides the
// update_registration_status stored procedure; a pair with no row fails with
// a distinct not-found error and nothing is inserted.
func (s *service) SetRegistrationStatus(ctx *ginext.Context) {
	var req dto.SetRegistrationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	reg, err := s.lifecycle.SetStatus(ctx, req.ProgramID, req.ParticipantID, req.Status)
	if err != nil {
		s.respondLifecycleError(ctx, err)
		return
	}

	s.log.Info().
		Int64("program_id", req.ProgramID).
		Int64("participant_id", req.ParticipantID).
		Str("status", reg.Status).
		Msg("registration status updated")
	dto.SuccessResponse(ctx, registrationResponse(reg))
}

func (s *service) GetProgramRegistrations(ctx *ginext.Context) {
	programID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if _, err := s.repo.GetProgram(ctx, programID); err != nil {
		dto.ProgramNotFoundError(ctx)
		return
	}

	details, err := s.repo.GetRegistrationsByProgramID(ctx, programID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get registrations")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, detailResponses(details))
}

func (s *service) GetMyRegistrations(ctx *ginext.Context) {
	session := sessionFrom(ctx)
	if session == nil {
		dto.UnauthorizedError(ctx, "Sign in required")
		return
	}

	participant, err := s.repo.GetParticipantByUserID(ctx, session.UserID)
	if err != nil {
		dto.SuccessResponse(ctx, []dto.RegistrationDetailResponse{})
		return
	}

	details, err := s.repo.GetRegistrationsByParticipantID(ctx, participant.ID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get registrations")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, detailResponses(details))
}

func detailResponses(details []model.RegistrationDetail) []dto.RegistrationDetailResponse {
	resp := make([]dto.RegistrationDetailResponse, 0, len(details))
	for i := range details {
		d := &details[i]
		resp = append(resp, dto.RegistrationDetailResponse{
			RegistrationResponse: registrationResponse(&d.Registration),
			FirstName:            d.FirstName,
			LastName:             d.LastName,
			Contact:              d.Contact,
			ProgramName:          d.ProgramName,
		})
	}
	return resp
}

func (s *service) respondLifecycleError(ctx *ginext.Context, err error) {
	var dup *registration.DuplicateError
	var incomplete *registration.IncompleteProfileError

	switch {
	case errors.As(err, &dup):
		dto.AlreadyAppliedError(ctx, registrationResponse(&dup.Existing))
	case errors.As(err, &incomplete):
		dto.BadResponseError(ctx, dto.ProfileIncomplete,
			"Missing required fields: "+strings.Join(incomplete.Missing, ", "))
	case errors.Is(err, registration.ErrProgramNotFound):
		dto.ProgramNotFoundError(ctx)
	case errors.Is(err, registration.ErrParticipantNotFound):
		dto.ParticipantNotFoundError(ctx)
	case errors.Is(err, registration.ErrNotFound):
		dto.RegistrationNotFoundError(ctx)
	case errors.Is(err, registration.ErrInvalidStatus):
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid registration status")
	case errors.Is(err, registration.ErrTransitionDenied):
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Status transition not allowed")
	default:
		s.log.Error().Err(err).Msg("registration operation failed")
		dto.InternalServerError(ctx)
	}
}
