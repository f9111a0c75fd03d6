package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/dbpg"

	"youthcouncil/internal/model"
)

var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already registered")
)

// Repository is the single data-access surface. The registration methods
// double as the registration lifecycle's Store.
type Repository interface {
	CreateProgram(ctx context.Context, p *model.Program) (int64, error)
	GetProgram(ctx context.Context, id int64) (*model.Program, error)
	GetAllPrograms(ctx context.Context) ([]model.Program, error)
	UpdateProgram(ctx context.Context, p *model.Program) error
	SetProgramAttachment(ctx context.Context, id int64, url string) error
	DeleteProgramCascade(ctx context.Context, id int64) error

	CreateParticipant(ctx context.Context, p *model.Participant) (int64, error)
	GetParticipant(ctx context.Context, id int64) (*model.Participant, error)
	GetParticipantByUserID(ctx context.Context, userID int64) (*model.Participant, error)
	GetAllParticipants(ctx context.Context) ([]model.Participant, error)
	UpdateParticipant(ctx context.Context, p *model.Participant) error
	DeleteParticipantCascade(ctx context.Context, id int64) error

	GetRegistration(ctx context.Context, programID, participantID int64) (*model.Registration, error)
	CreateRegistration(ctx context.Context, programID, participantID int64, status string, date time.Time) (*model.Registration, error)
	UpdateStatus(ctx context.Context, programID, participantID int64, status string) (*model.Registration, error)
	GetRegistrationsByProgramID(ctx context.Context, programID int64) ([]model.RegistrationDetail, error)
	GetRegistrationsByParticipantID(ctx context.Context, participantID int64) ([]model.RegistrationDetail, error)
	CountRegistrations(ctx context.Context, programID int64) (int, error)

	CreateExpense(ctx context.Context, e *model.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	GetAllExpenses(ctx context.Context) ([]model.Expense, error)
	UpdateExpense(ctx context.Context, e *model.Expense) error
	DeleteExpense(ctx context.Context, id int64) error

	CreateFeedback(ctx context.Context, f *model.Feedback) (int64, error)
	GetAllFeedback(ctx context.Context) ([]model.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, id int64, status string) error

	CreateUser(ctx context.Context, email, passwordHash, role string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	MigrateUp(migrationsDir string) error
	MigrateDown(migrationsDir string) error
}

type repository struct {
	db  *dbpg.DB
	log *zerolog.Logger
}

func NewRepository(db *dbpg.DB, log *zerolog.Logger) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if err := db.Master.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	return &repository{db: db, log: log}, nil
}

func (r *repository) MigrateUp(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations applied successfully from %s", migrationsDir)
	return nil
}

func (r *repository) MigrateDown(migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.down.sql"))
	if err != nil {
		return fmt.Errorf("failed to read rollback files: %w", err)
	}

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read rollback file %s: %w", file, err)
		}

		if _, err := r.db.ExecContext(context.Background(), string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", file, err)
		}
	}

	r.log.Info().Msgf("Migrations rolled back successfully from %s", migrationsDir)
	return nil
}
