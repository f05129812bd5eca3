package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the persisted outcome of a completed draft. BookingDate and
// BookingTime are kept separate so the slot uniqueness guard can index them
// directly.
type Booking struct {
	Base
	SalonID         uuid.UUID     `db:"salon_id" json:"salon_id"`
	CustomerID      uuid.UUID     `db:"customer_id" json:"customer_id"`
	ServiceID       uuid.UUID     `db:"service_id" json:"service_id"`
	StaffID         uuid.UUID     `db:"staff_id" json:"staff_id"`
	BookingDate     time.Time     `db:"booking_date" json:"booking_date"`
	BookingTime     string        `db:"booking_time" json:"booking_time"` // HH:MM, 24h
	DurationMinutes int           `db:"duration_minutes" json:"duration_minutes"`
	IsHomeService   bool          `db:"is_home_service" json:"is_home_service"`
	CustomerAddress *string       `db:"customer_address" json:"customer_address,omitempty"`
	Notes           *string       `db:"notes" json:"notes,omitempty"`
	TotalAmount     int64         `db:"total_amount" json:"total_amount"`
	Status          BookingStatus `db:"status" json:"status"`
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

type BookingFilters struct {
	CustomerID uuid.UUID
	StaffID    uuid.UUID
	Status     BookingStatus
	StartDate  time.Time
	EndDate    time.Time
}
