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

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) (err error) {
	defer func(start time.Time) { r.track("customer_create", start, err) }(time.Now())

	query := `
		INSERT INTO customers (
			id, email, name, phone, address, password_hash,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()

	_, err = r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Phone,
		customer.Address,
		customer.PasswordHash,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Customer, err error) {
	defer func(start time.Time) { r.track("customer_get", start, err) }(time.Now())

	query := `
		SELECT id, email, name, phone, address, password_hash, last_login_at,
			   created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	var customer model.Customer
	err = r.db.GetContext(ctx, &customer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (_ *model.Customer, err error) {
	defer func(start time.Time) { r.track("customer_get_by_email", start, err) }(time.Now())

	query := `
		SELECT id, email, name, phone, address, password_hash, last_login_at,
			   created_at, updated_at
		FROM customers
		WHERE email = $1
	`
	var customer model.Customer
	err = r.db.GetContext(ctx, &customer, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by email: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) (err error) {
	defer func(start time.Time) { r.track("customer_update", start, err) }(time.Now())

	query := `
		UPDATE customers
		SET name = $1, phone = $2, address = $3, last_login_at = $4, updated_at = $5
		WHERE id = $6
	`
	customer.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Address,
		customer.LastLoginAt,
		customer.UpdatedAt,
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}
