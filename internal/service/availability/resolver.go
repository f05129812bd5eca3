package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
)

// Window is the bookable operating window for a day. Slots start at Open and
// repeat every SlotMinutes up to (not including) Close.
type Window struct {
	Open        string // HH:MM
	Close       string // HH:MM
	SlotMinutes int
}

// DefaultWindow matches the salons' standard operating hours.
var DefaultWindow = Window{
	Open:        "09:00",
	Close:       "18:00",
	SlotMinutes: 30,
}

type Resolver struct {
	bookings repository.BookingRepository
	window   Window
}

func NewResolver(bookings repository.BookingRepository, window Window) *Resolver {
	if window.SlotMinutes <= 0 {
		window = DefaultWindow
	}
	return &Resolver{bookings: bookings, window: window}
}

// EligibleStaff filters the roster to members whose specialty set contains
// the service's category, preserving roster order. An empty result is valid;
// it means no staff covers the category, not an error.
func EligibleStaff(service *model.Service, roster []*model.Staff) []*model.Staff {
	eligible := make([]*model.Staff, 0, len(roster))
	for _, member := range roster {
		if member.Available && member.HasSpecialty(service.Category) {
			eligible = append(eligible, member)
		}
	}
	return eligible
}

// AvailableSlots returns the bookable HH:MM start times for the staff member
// on the given date. A slot is unavailable when its service window
// [start, start+duration) overlaps an active booking.
func (r *Resolver) AvailableSlots(ctx context.Context, staffID uuid.UUID, date time.Time, durationMinutes int) ([]string, error) {
	booked, err := r.bookings.GetStaffDayBookings(ctx, staffID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day bookings: %w", err)
	}

	open, err := parseMinutes(r.window.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid open time: %w", err)
	}
	close, err := parseMinutes(r.window.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close time: %w", err)
	}

	slots := make([]string, 0, (close-open)/r.window.SlotMinutes)
	for start := open; start < close; start += r.window.SlotMinutes {
		if overlapsAny(start, start+durationMinutes, booked) {
			continue
		}
		slots = append(slots, formatMinutes(start))
	}
	return slots, nil
}

// FilterElapsed drops slots whose start time is not after now, for use when
// the requested date is the current day. Zero-padded HH:MM compares
// lexicographically.
func FilterElapsed(slots []string, now time.Time) []string {
	cutoff := now.Format("15:04")
	remaining := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot > cutoff {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

func overlapsAny(start, end int, bookings []*model.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		bStart, err := parseMinutes(b.BookingTime)
		if err != nil {
			continue
		}
		bEnd := bStart + b.DurationMinutes
		// Strict interval overlap: bookings that merely touch a slot
		// boundary do not block it.
		if start < bEnd && bStart < end {
			return true
		}
	}
	return false
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
