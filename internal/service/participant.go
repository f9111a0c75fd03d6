package service

import (
	"fmt"
	"time"

	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
	"youthcouncil/pkg/validator"
)

func participantResponse(p *model.Participant) dto.ParticipantResponse {
	return dto.ParticipantResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Age:       p.Age,
		Contact:   p.Contact,
		Email:     p.Email,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *service) CreateParticipant(ctx *ginext.Context) {
	var req dto.ParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	participant := &model.Participant{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Contact:   req.Contact,
		Email:     req.Email,
		Address:   req.Address,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	id, err := s.repo.CreateParticipant(ctx, participant)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create participant in DB")
		dto.InternalServerError(ctx)
		return
	}

	participant.ID = id
	s.log.Info().Int64("participant_id", id).Msg("participant created")
	dto.SuccessCreatedResponse(ctx, participantResponse(participant))
}

func (s *service) GetParticipant(ctx *ginext.Context) {
	participantID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	participant, err := s.repo.GetParticipant(ctx, participantID)
	if err != nil {
		dto.ParticipantNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, participantResponse(participant))
}

func (s *service) GetAllParticipants(ctx *ginext.Context) {
	participants, err := s.repo.GetAllParticipants(ctx)
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		resp = append(resp, participantResponse(&participants[i]))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) UpdateParticipant(ctx *ginext.Context) {
	participantID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	participant := &model.Participant{
		ID:        participantID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
		Contact:   req.Contact,
		Email:     req.Email,
		Address:   req.Address,
	}

	if err := s.repo.UpdateParticipant(ctx, participant); err != nil {
		if err == registration.ErrParticipantNotFound {
			dto.ParticipantNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update participant")
		dto.InternalServerError(ctx)
		return
	}

	updated, err := s.repo.GetParticipant(ctx, participantID)
	if err != nil {
		dto.ParticipantNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, participantResponse(updated))
}

func (s *service) DeleteParticipant(ctx *ginext.Context) {
	participantID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := s.lifecycle.RemoveParticipant(ctx, participantID); err != nil {
		if err == registration.ErrParticipantNotFound {
			dto.ParticipantNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete participant")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("participant_id", participantID).Msg("participant deleted with registrations")
	dto.SuccessResponse(ctx, nil)
}

// GetProfile returns the participant record linked to the signed-in user.
func (s *service) GetProfile(ctx *ginext.Context) {
	session := sessionFrom(ctx)
	if session == nil {
		dto.UnauthorizedError(ctx, "Sign in required")
		return
	}

	participant, err := s.repo.GetParticipantByUserID(ctx, session.UserID)
	if err != nil {
		dto.ParticipantNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, participantResponse(participant))
}

// UpdateProfile upserts the signed-in user's participant record. Partial
// profiles are allowed here; completeness is only enforced at apply time.
func (s *service) UpdateProfile(ctx *ginext.Context) {
	session := sessionFrom(ctx)
	if session == nil {
		dto.UnauthorizedError(ctx, "Sign in required")
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	existing, err := s.repo.GetParticipantByUserID(ctx, session.UserID)
	if err == registration.ErrParticipantNotFound {
		participant := &model.Participant{
			UserID:    &session.UserID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Age:       req.Age,
			Contact:   req.Contact,
			Email:     req.Email,
			Address:   req.Address,
		}
		id, err := s.repo.CreateParticipant(ctx, participant)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to create profile")
			dto.InternalServerError(ctx)
			return
		}
		participant.ID = id
		dto.SuccessCreatedResponse(ctx, participantResponse(participant))
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load profile")
		dto.InternalServerError(ctx)
		return
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Age = req.Age
	existing.Contact = req.Contact
	existing.Email = req.Email
	existing.Address = req.Address

	if err := s.repo.UpdateParticipant(ctx, existing); err != nil {
		s.log.Error().Err(err).Msg("failed to update profile")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, participantResponse(existing))
}
