package service

import (
	"fmt"
	"time"

	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/repo"
	"youthcouncil/pkg/validator"
)

func feedbackResponse(f *model.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:        f.ID,
		UserID:    f.UserID,
		Text:      f.Text,
		Rating:    f.Rating,
		Category:  f.Category,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (s *service) CreateFeedback(ctx *ginext.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	feedback := &model.Feedback{
		Text:      req.Text,
		Rating:    req.Rating,
		Category:  req.Category,
		Status:    model.FeedbackPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if session := sessionFrom(ctx); session != nil {
		feedback.UserID = &session.UserID
	}

	id, err := s.repo.CreateFeedback(ctx, feedback)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create feedback in DB")
		dto.InternalServerError(ctx)
		return
	}

	feedback.ID = id
	s.log.Info().Int64("feedback_id", id).Msg("feedback submitted")
	dto.SuccessCreatedResponse(ctx, feedbackResponse(feedback))
}

func (s *service) GetAllFeedback(ctx *ginext.Context) {
	items, err := s.repo.GetAllFeedback(ctx)
	if err != nil {
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.FeedbackResponse, 0, len(items))
	for i := range items {
		resp = append(resp, feedbackResponse(&items[i]))
	}
	dto.SuccessResponse(ctx, resp)
}

func (s *service) SetFeedbackStatus(ctx *ginext.Context) {
	feedbackID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetFeedbackStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.repo.UpdateFeedbackStatus(ctx, feedbackID, req.Status); err != nil {
		if err == repo.ErrFeedbackNotFound {
			dto.NotFoundError(ctx, dto.FeedbackNotFound, "Feedback not found")
			return
		}
		s.log.Error().Err(err).Msg("failed to update feedback status")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("feedback_id", feedbackID).Str("status", req.Status).Msg("feedback status updated")
	dto.SuccessResponse(ctx, nil)
}
