package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
)

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Staff, err error) {
	defer func(start time.Time) { r.track("staff_get", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, name, email, phone, specialties, available,
			   created_at, updated_at
		FROM staff
		WHERE id = $1
	`
	var staff model.Staff
	err = r.db.GetContext(ctx, &staff, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) ListBySalon(ctx context.Context, salonID uuid.UUID) (_ []*model.Staff, err error) {
	defer func(start time.Time) { r.track("staff_list", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, name, email, phone, specialties, available,
			   created_at, updated_at
		FROM staff
		WHERE salon_id = $1 AND available = true
		ORDER BY created_at ASC
	`
	var roster []*model.Staff
	err = r.db.SelectContext(ctx, &roster, query, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return roster, nil
}
