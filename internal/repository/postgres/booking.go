package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
)

const uniqueViolation = "23505"

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Booking, err error) {
	defer func(start time.Time) { r.track("booking_get", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, customer_id, service_id, staff_id,
			   booking_date, booking_time, duration_minutes,
			   is_home_service, customer_address, notes,
			   total_amount, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`
	var booking model.Booking
	err = r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) (_ []*model.Booking, err error) {
	defer func(start time.Time) { r.track("booking_list", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, customer_id, service_id, staff_id,
			   booking_date, booking_time, duration_minutes,
			   is_home_service, customer_address, notes,
			   total_amount, status, created_at, updated_at
		FROM bookings
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.CustomerID != uuid.Nil {
			query += fmt.Sprintf(" AND customer_id = $%d", argCount)
			args = append(args, filters.CustomerID)
			argCount++
		}
		if filters.StaffID != uuid.Nil {
			query += fmt.Sprintf(" AND staff_id = $%d", argCount)
			args = append(args, filters.StaffID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY booking_date DESC, booking_time DESC"

	var bookings []*model.Booking
	err = r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) GetStaffDayBookings(ctx context.Context, staffID uuid.UUID, date time.Time) (_ []*model.Booking, err error) {
	defer func(start time.Time) { r.track("booking_staff_day", start, err) }(time.Now())

	query := `
		SELECT id, salon_id, customer_id, service_id, staff_id,
			   booking_date, booking_time, duration_minutes,
			   is_home_service, customer_address, notes,
			   total_amount, status, created_at, updated_at
		FROM bookings
		WHERE staff_id = $1
		AND booking_date = $2
		AND status IN ('pending', 'confirmed')
		ORDER BY booking_time ASC
	`
	var bookings []*model.Booking
	err = r.db.SelectContext(ctx, &bookings, query, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff bookings: %w", err)
	}
	return bookings, nil
}

// CreateWithPayment writes the booking, the payment and the customer profile
// upsert in one transaction. The bookings table carries a partial unique
// index on (staff_id, booking_date, booking_time) for active bookings, so a
// lost race on the slot surfaces here as ErrSlotTaken; a failed payment
// insert surfaces as ErrPaymentWrite and rolls everything back.
func (r *bookingRepository) CreateWithPayment(ctx context.Context, booking *model.Booking, payment *model.Payment, profile *model.Customer) (err error) {
	defer func(start time.Time) { r.track("booking_create", start, err) }(time.Now())

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		now := time.Now()
		booking.ID = uuid.New()
		booking.CreatedAt = now
		booking.UpdatedAt = now

		bookingQuery := `
			INSERT INTO bookings (
				id, salon_id, customer_id, service_id, staff_id,
				booking_date, booking_time, duration_minutes,
				is_home_service, customer_address, notes,
				total_amount, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`
		_, err := tx.ExecContext(ctx, bookingQuery,
			booking.ID,
			booking.SalonID,
			booking.CustomerID,
			booking.ServiceID,
			booking.StaffID,
			booking.BookingDate,
			booking.BookingTime,
			booking.DurationMinutes,
			booking.IsHomeService,
			booking.CustomerAddress,
			booking.Notes,
			booking.TotalAmount,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return repository.ErrSlotTaken
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		payment.ID = uuid.New()
		payment.BookingID = booking.ID
		payment.CreatedAt = now
		payment.UpdatedAt = now

		paymentQuery := `
			INSERT INTO payments (
				id, booking_id, amount, method, status,
				transaction_id, paid_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err = tx.ExecContext(ctx, paymentQuery,
			payment.ID,
			payment.BookingID,
			payment.Amount,
			payment.Method,
			payment.Status,
			payment.TransactionID,
			payment.PaidAt,
			payment.CreatedAt,
			payment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", repository.ErrPaymentWrite, err)
		}

		profileQuery := `
			INSERT INTO customers (id, email, name, phone, address, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, '', $6, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				phone = COALESCE(EXCLUDED.phone, customers.phone),
				address = COALESCE(EXCLUDED.address, customers.address),
				updated_at = EXCLUDED.updated_at
		`
		_, err = tx.ExecContext(ctx, profileQuery,
			profile.ID,
			profile.Email,
			profile.Name,
			profile.Phone,
			profile.Address,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert customer profile: %w", err)
		}

		return nil
	})
	return err
}
