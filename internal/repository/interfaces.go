package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound = errors.New("not found")

	// ErrSlotTaken is returned when the bookings slot uniqueness guard
	// rejects an insert. Exactly one of two concurrent submissions for the
	// same (staff, date, time) sees this.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrPaymentWrite is returned when the payment row of a submit
	// transaction cannot be written. The whole transaction rolls back.
	ErrPaymentWrite = errors.New("payment write failed")
)

// All repository interfaces in one file
type (
	ServiceRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error)
	}

	StaffRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Staff, error)
		ListBySalon(ctx context.Context, salonID uuid.UUID) ([]*model.Staff, error)
	}

	BookingRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		// GetStaffDayBookings returns the active (pending/confirmed)
		// bookings for one staff member on one calendar date.
		GetStaffDayBookings(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*model.Booking, error)
		// CreateWithPayment persists the booking row, its payment row and
		// the customer profile upsert as a single transaction. Returns
		// ErrSlotTaken when the slot uniqueness guard fires.
		CreateWithPayment(ctx context.Context, booking *model.Booking, payment *model.Payment, profile *model.Customer) error
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
		GetByEmail(ctx context.Context, email string) (*model.Customer, error)
		Update(ctx context.Context, customer *model.Customer) error
	}

	// DraftStore holds the in-progress booking draft per customer. A draft
	// survives process restarts and a redirect-to-login round trip, but
	// expires after the configured TTL.
	DraftStore interface {
		Get(ctx context.Context, customerID uuid.UUID) (*model.BookingDraft, error)
		Save(ctx context.Context, draft *model.BookingDraft) error
		Delete(ctx context.Context, customerID uuid.UUID) error
	}
)
