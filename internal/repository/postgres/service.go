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

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Service, err error) {
	defer func(start time.Time) { r.track("service_get", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, name, category, duration, base_price,
			   home_eligible, home_surcharge, active,
			   created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	err = r.db.GetContext(ctx, &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, filters *model.ServiceFilters) (_ []*model.Service, err error) {
	defer func(start time.Time) { r.track("service_list", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, name, category, duration, base_price,
			   home_eligible, home_surcharge, active,
			   created_at, updated_at
		FROM services
		WHERE active = true
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.SalonID != uuid.Nil {
			query += fmt.Sprintf(" AND salon_id = $%d", argCount)
			args = append(args, filters.SalonID)
			argCount++
		}
		if filters.Category != "" {
			query += fmt.Sprintf(" AND category = $%d", argCount)
			args = append(args, filters.Category)
			argCount++
		}
	}

	query += " ORDER BY name ASC"

	var services []*model.Service
	err = r.db.SelectContext(ctx, &services, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
