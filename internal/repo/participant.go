package repo

import (
	"context"
	"database/sql"
	"fmt"

	"youthcouncil/internal/model"
	"youthcouncil/internal/registration"
)

func (r *repository) CreateParticipant(ctx context.Context, p *model.Participant) (int64, error) {
	query := `
		INSERT INTO participants (user_id, first_name, last_name, age, contact, email, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	row := r.db.Master.QueryRowContext(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Age, p.Contact, p.Email, p.Address,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert participant: %w", err)
	}
	return id, nil
}

func (r *repository) GetParticipant(ctx context.Context, id int64) (*model.Participant, error) {
	query := `
		SELECT id, user_id, first_name, last_name, age, contact,
		       COALESCE(email, ''), COALESCE(address, ''), created_at, updated_at
		FROM participants
		WHERE id = $1
	`
	return r.scanParticipant(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetParticipantByUserID(ctx context.Context, userID int64) (*model.Participant, error) {
	query := `
		SELECT id, user_id, first_name, last_name, age, contact,
		       COALESCE(email, ''), COALESCE(address, ''), created_at, updated_at
		FROM participants
		WHERE user_id = $1
	`
	return r.scanParticipant(r.db.QueryRowContext(ctx, query, userID))
}

func (r *repository) scanParticipant(row *sql.Row) (*model.Participant, error) {
	var p model.Participant
	if err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Age, &p.Contact,
		&p.Email, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, registration.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *repository) GetAllParticipants(ctx context.Context) ([]model.Participant, error) {
	query := `
		SELECT id, user_id, first_name, last_name, age, contact,
		       COALESCE(email, ''), COALESCE(address, ''), created_at, updated_at
		FROM participants
		ORDER BY last_name ASC, first_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Age, &p.Contact,
			&p.Email, &p.Address, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func (r *repository) UpdateParticipant(ctx context.Context, p *model.Participant) error {
	query := `
		UPDATE participants
		SET first_name = $1, last_name = $2, age = $3, contact = $4,
		    email = $5, address = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id
	`

	var id int64
	err := r.db.Master.QueryRowContext(ctx, query,
		p.FirstName, p.LastName, p.Age, p.Contact, p.Email, p.Address, p.ID,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return registration.ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return nil
}

// DeleteParticipantCascade removes the participant's registrations before
// the participant itself, inside one transaction.
func (r *repository) DeleteParticipantCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE participant_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete participant registrations: %w", err)
	}

	var got int64
	err = tx.QueryRowContext(ctx, `DELETE FROM participants WHERE id = $1 RETURNING id`, id).Scan(&got)
	if err == sql.ErrNoRows {
		_ = tx.Rollback()
		return registration.ErrParticipantNotFound
	}
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
