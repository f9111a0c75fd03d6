package service

import (
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"youthcouncil/internal/auth"
	"youthcouncil/internal/dto"
	"youthcouncil/internal/registration"
	"youthcouncil/internal/repo"
)

// SessionKey is where the auth middleware parks the request's session.
const SessionKey = "session"

// Uploader pushes a named binary and returns a durable public URL.
type Uploader interface {
	Upload(path string, data io.Reader, contentType string) (string, error)
}

type Service interface {
	Register(ctx *ginext.Context)
	Login(ctx *ginext.Context)

	CreateProgram(ctx *ginext.Context)
	GetProgram(ctx *ginext.Context)
	GetAllPrograms(ctx *ginext.Context)
	UpdateProgram(ctx *ginext.Context)
	DeleteProgram(ctx *ginext.Context)
	UploadAttachment(ctx *ginext.Context)

	CreateParticipant(ctx *ginext.Context)
	GetParticipant(ctx *ginext.Context)
	GetAllParticipants(ctx *ginext.Context)
	UpdateParticipant(ctx *ginext.Context)
	DeleteParticipant(ctx *ginext.Context)
	GetProfile(ctx *ginext.Context)
	UpdateProfile(ctx *ginext.Context)

	Apply(ctx *ginext.Context)
	AdminAddRegistration(ctx *ginext.Context)
	SetRegistrationStatus(ctx *ginext.Context)
	GetProgramRegistrations(ctx *ginext.Context)
	GetMyRegistrations(ctx *ginext.Context)

	CreateExpense(ctx *ginext.Context)
	GetAllExpenses(ctx *ginext.Context)
	UpdateExpense(ctx *ginext.Context)
	DeleteExpense(ctx *ginext.Context)
	BudgetSummary(ctx *ginext.Context)
	BudgetReport(ctx *ginext.Context)

	CreateFeedback(ctx *ginext.Context)
	GetAllFeedback(ctx *ginext.Context)
	SetFeedbackStatus(ctx *ginext.Context)
}

type service struct {
	repo      repo.Repository
	lifecycle *registration.Lifecycle
	sessions  *auth.Manager
	uploads   Uploader
	log       *zerolog.Logger
}

func NewService(r repo.Repository, sessions *auth.Manager, uploads Uploader, log *zerolog.Logger) Service {
	return &service{
		repo:      r,
		lifecycle: registration.NewLifecycle(r, registration.Permissive),
		sessions:  sessions,
		uploads:   uploads,
		log:       log,
	}
}

func sessionFrom(ctx *ginext.Context) *auth.Session {
	v, ok := ctx.Get(SessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*auth.Session)
	return s
}

func parseID(ctx *ginext.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid "+name)
		return 0, false
	}
	return id, true
}
