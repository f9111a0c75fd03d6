package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
)

func (r *repository) GetRegistration(ctx context.Context, programID, participantID int64) (*model.Registration, error) {
	query := `
		SELECT id, program_id, participant_id, registration_status, registration_date, updated_at
		FROM registrations
		WHERE program_id = $1 AND participant_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, programID, participantID)

	var reg model.Registration
	if err := row.Scan(
		&reg.ID, &reg.ProgramID, &reg.ParticipantID,
		&reg.Status, &reg.RegistrationDate, &reg.UpdatedAt,
	); err != nil {
		return nil, registration.ErrNotFound
	}
	return &reg, nil
}

// CreateRegistration inserts a registration for the pair inside one
// transaction. The program row is locked first so two concurrent inserts for
// the same program serialize, then the duplicate check and the insert run
// against a stable view. A UNIQUE(program_id, participant_id) constraint
// backs this up at the schema level.
func (r *repository) CreateRegistration(ctx context.Context, programID, participantID int64, status string, date time.Time) (*model.Registration, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var pid int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM programs WHERE id = $1 FOR UPDATE
	`, programID).Scan(&pid)
	if err != nil {
		_ = tx.Rollback()
		return nil, registration.ErrProgramNotFound
	}

	var existing model.Registration
	err = tx.QueryRowContext(ctx, `
		SELECT id, program_id, participant_id, registration_status, registration_date, updated_at
		FROM registrations
		WHERE program_id = $1 AND participant_id = $2
	`, programID, participantID).Scan(
		&existing.ID, &existing.ProgramID, &existing.ParticipantID,
		&existing.Status, &existing.RegistrationDate, &existing.UpdatedAt,
	)
	if err == nil {
		_ = tx.Rollback()
		return nil, &registration.DuplicateError{Existing: existing}
	}
	if err != sql.ErrNoRows {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to check duplicate registration: %w", err)
	}

	var reg model.Registration
	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (program_id, participant_id, registration_status, registration_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, program_id, participant_id, registration_status, registration_date, updated_at
	`, programID, participantID, status, date).Scan(
		&reg.ID, &reg.ProgramID, &reg.ParticipantID,
		&reg.Status, &reg.RegistrationDate, &reg.UpdatedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &reg, nil
}

// UpdateStatus goes through the update_registration_status stored procedure,
// the one place validation runs server-side: the update and the existence
// check happen in a single statement, so a missing row can never be turned
// into an insert by a racing client.
func (r *repository) UpdateStatus(ctx context.Context, programID, participantID int64, status string) (*model.Registration, error) {
	query := `
		SELECT id, program_id, participant_id, registration_status, registration_date, updated_at
		FROM update_registration_status($1, $2, $3)
	`
	row := r.db.Master.QueryRowContext(ctx, query, programID, participantID, status)

	var reg model.Registration
	err := row.Scan(
		&reg.ID, &reg.ProgramID, &reg.ParticipantID,
		&reg.Status, &reg.RegistrationDate, &reg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, registration.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	return &reg, nil
}

func (r *repository) GetRegistrationsByProgramID(ctx context.Context, programID int64) ([]model.RegistrationDetail, error) {
	query := `
		SELECT r.id, r.program_id, r.participant_id, r.registration_status,
		       r.registration_date, r.updated_at,
		       p.first_name, p.last_name, p.contact, pr.name
		FROM registrations r
		JOIN participants p ON p.id = r.participant_id
		JOIN programs pr ON pr.id = r.program_id
		WHERE r.program_id = $1
		ORDER BY r.registration_date DESC
	`

	return r.queryRegistrationDetails(ctx, query, programID)
}

func (r *repository) GetRegistrationsByParticipantID(ctx context.Context, participantID int64) ([]model.RegistrationDetail, error) {
	query := `
		SELECT r.id, r.program_id, r.participant_id, r.registration_status,
		       r.registration_date, r.updated_at,
		       p.first_name, p.last_name, p.contact, pr.name
		FROM registrations r
		JOIN participants p ON p.id = r.participant_id
		JOIN programs pr ON pr.id = r.program_id
		WHERE r.participant_id = $1
		ORDER BY r.registration_date DESC
	`

	return r.queryRegistrationDetails(ctx, query, participantID)
}

func (r *repository) queryRegistrationDetails(ctx context.Context, query string, arg any) ([]model.RegistrationDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.RegistrationDetail
	for rows.Next() {
		var d model.RegistrationDetail
		if err := rows.Scan(
			&d.ID, &d.ProgramID, &d.ParticipantID, &d.Status,
			&d.RegistrationDate, &d.UpdatedAt,
			&d.FirstName, &d.LastName, &d.Contact, &d.ProgramName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, d)
	}

	return regs, rows.Err()
}

func (r *repository) CountRegistrations(ctx context.Context, programID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE program_id = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, programID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}
