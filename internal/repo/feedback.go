package repo

import (
	"context"
	"database/sql"
	"fmt"

	"youthcouncil/internal/model"
)

func (r *repository) CreateFeedback(ctx context.Context, f *model.Feedback) (int64, error) {
	query := `
		INSERT INTO feedback (user_id, text, rating, category, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	row := r.db.Master.QueryRowContext(ctx, query,
		f.UserID, f.Text, f.Rating, f.Category, f.Status,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}
	return id, nil
}

func (r *repository) GetAllFeedback(ctx context.Context) ([]model.Feedback, error) {
	query := `
		SELECT id, user_id, text, rating, category, status, created_at, updated_at
		FROM feedback
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	defer rows.Close()

	var items []model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.Text, &f.Rating,
			&f.Category, &f.Status, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		items = append(items, f)
	}

	return items, rows.Err()
}

func (r *repository) UpdateFeedbackStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE feedback
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var got int64
	err := r.db.Master.QueryRowContext(ctx, query, status, id).Scan(&got)
	if err == sql.ErrNoRows {
		return ErrFeedbackNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update feedback status: %w", err)
	}
	return nil
}
