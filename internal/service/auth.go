package service

import (
	"fmt"
	"strings"

	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/auth"
	"youthcouncil/internal/dto"
	"youthcouncil/internal/model"
	"youthcouncil/internal/repo"
	"youthcouncil/pkg/validator"
)

func (s *service) Register(ctx *ginext.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash password")
		dto.InternalServerError(ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.CreateUser(ctx, email, hash, model.RoleUser)
	if err != nil {
		if err == repo.ErrDuplicateEmail {
			dto.BadResponseError(ctx, dto.EmailTaken, "Email already registered")
			return
		}
		s.log.Error().Err(err).Msg("failed to create user")
		dto.InternalServerError(ctx)
		return
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue session token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	dto.SuccessCreatedResponse(ctx, dto.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	})
}

func (s *service) Login(ctx *ginext.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		dto.UnauthorizedError(ctx, "Invalid email or password")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		dto.UnauthorizedError(ctx, "Invalid email or password")
		return
	}

	token, err := s.sessions.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue session token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	dto.SuccessResponse(ctx, dto.AuthResponse{
		Token: token,
		Email: user.Email,
		Role:  user.Role,
	})
}
