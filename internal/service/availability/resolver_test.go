package availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/booking-api/internal/model"
)

type fakeBookingRepo struct {
	bookings []*model.Booking
}

func (f *fakeBookingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) GetStaffDayBookings(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*model.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) CreateWithPayment(ctx context.Context, booking *model.Booking, payment *model.Payment, profile *model.Customer) error {
	return nil
}

func booked(start string, duration int, status model.BookingStatus) *model.Booking {
	return &model.Booking{
		BookingTime:     start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestEligibleStaff(t *testing.T) {
	svc := &model.Service{Category: "hair"}
	roster := []*model.Staff{
		{Name: "Ayesha", Specialties: []string{"hair", "makeup"}, Available: true},
		{Name: "Sana", Specialties: []string{"nails"}, Available: true},
		{Name: "Hira", Specialties: []string{"hair"}, Available: false},
		{Name: "Zara", Specialties: []string{"hair"}, Available: true},
	}

	eligible := EligibleStaff(svc, roster)
	require.Len(t, eligible, 2)
	// Roster order is preserved.
	assert.Equal(t, "Ayesha", eligible[0].Name)
	assert.Equal(t, "Zara", eligible[1].Name)
}

func TestEligibleStaffEmptyResult(t *testing.T) {
	svc := &model.Service{Category: "massage"}
	roster := []*model.Staff{
		{Name: "Ayesha", Specialties: []string{"hair"}, Available: true},
	}

	eligible := EligibleStaff(svc, roster)
	assert.NotNil(t, eligible)
	assert.Empty(t, eligible, "no coverage is a valid empty result")
}

func TestAvailableSlotsFullDay(t *testing.T) {
	resolver := NewResolver(&fakeBookingRepo{}, DefaultWindow)

	slots, err := resolver.AvailableSlots(context.Background(), uuid.New(), time.Now(), 30)
	require.NoError(t, err)

	// 09:00 through 17:30 at 30-minute steps.
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[17])
}

func TestAvailableSlotsExcludesOverlaps(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*model.Booking{
		booked("10:00", 60, model.BookingStatusConfirmed),
	}}
	resolver := NewResolver(repo, DefaultWindow)

	slots, err := resolver.AvailableSlots(context.Background(), uuid.New(), time.Now(), 60)
	require.NoError(t, err)

	// A 60-minute service starting at 09:30, 10:00 or 10:30 would overlap
	// [10:00, 11:00). 09:00 ends exactly at 10:00 and stays bookable.
	assert.Contains(t, slots, "09:00")
	assert.NotContains(t, slots, "09:30")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "11:00")
}

func TestAvailableSlotsIgnoresInactiveBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*model.Booking{
		booked("10:00", 60, model.BookingStatusCancelled),
		booked("12:00", 60, model.BookingStatusCompleted),
	}}
	resolver := NewResolver(repo, DefaultWindow)

	slots, err := resolver.AvailableSlots(context.Background(), uuid.New(), time.Now(), 30)
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")
	assert.Contains(t, slots, "12:30")
}

func TestAvailableSlotsBoundaryTouchDoesNotBlock(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*model.Booking{
		booked("11:00", 30, model.BookingStatusPending),
	}}
	resolver := NewResolver(repo, DefaultWindow)

	slots, err := resolver.AvailableSlots(context.Background(), uuid.New(), time.Now(), 30)
	require.NoError(t, err)

	// [10:30, 11:00) and [11:30, 12:00) touch the booking without overlap.
	assert.Contains(t, slots, "10:30")
	assert.NotContains(t, slots, "11:00")
	assert.Contains(t, slots, "11:30")
}

func TestFilterElapsed(t *testing.T) {
	slots := []string{"09:00", "09:30", "10:00", "10:30", "17:30"}
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	remaining := FilterElapsed(slots, now)
	// A slot starting exactly at the current minute is gone too.
	assert.Equal(t, []string{"10:30", "17:30"}, remaining)

	assert.Empty(t, FilterElapsed(slots, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, slots, FilterElapsed(slots, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)))
}

func TestNewResolverDefaultsInvalidWindow(t *testing.T) {
	resolver := NewResolver(&fakeBookingRepo{}, Window{SlotMinutes: 0})
	assert.Equal(t, DefaultWindow, resolver.window)
}
