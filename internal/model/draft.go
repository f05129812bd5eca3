package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking flow steps, linear and 1-indexed. Step 5 is terminal and reachable
// only through a successful submit.
const (
	StepSelectService = 1
	StepDateTime      = 2
	StepSelectStaff   = 3
	StepReviewPayment = 4
	StepConfirmation  = 5
)

// BookingDraft is the serializable accumulator for the booking flow. It is
// owned by a single customer session, stored as JSON in the draft store, and
// mutated exclusively through the booking flow service.
type BookingDraft struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	Step            int             `json:"step"`
	Service         *Service        `json:"service,omitempty"`
	IsHomeService   bool            `json:"is_home_service"`
	SelectedDate    *time.Time      `json:"selected_date,omitempty"`
	SelectedTime    *string         `json:"selected_time,omitempty"` // HH:MM, 24h
	SelectedStaff   *Staff          `json:"selected_staff,omitempty"`
	CustomerAddress *string         `json:"customer_address,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	PaymentMethod   *PaymentMethod  `json:"payment_method,omitempty"`
	PaymentDetails  *PaymentDetails `json:"payment_details,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewBookingDraft creates an empty draft at step 1.
func NewBookingDraft(customerID uuid.UUID) *BookingDraft {
	now := time.Now()
	return &BookingDraft{
		CustomerID: customerID,
		Step:       StepSelectService,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// StepComplete reports whether the given step's advance predicate holds.
// Step 4 is always allowed to attempt an advance; its completion predicate
// is checked separately at submit time (ReadyToSubmit).
func (d *BookingDraft) StepComplete(step int) bool {
	switch step {
	case StepSelectService:
		return d.Service != nil
	case StepDateTime:
		return d.SelectedDate != nil && d.SelectedTime != nil
	case StepSelectStaff:
		return d.SelectedStaff != nil
	case StepReviewPayment:
		return true
	default:
		return false
	}
}

// CanEnter reports whether every step before the given one satisfies its
// advance predicate. This is the no-skip-ahead guard behind the UI gating.
func (d *BookingDraft) CanEnter(step int) bool {
	if step < StepSelectService || step > StepReviewPayment {
		return false
	}
	for s := StepSelectService; s < step; s++ {
		if !d.StepComplete(s) {
			return false
		}
	}
	return true
}

// ReadyToSubmit is the step-4 completion predicate: all earlier steps
// complete, address present for home service, and a payment method chosen.
func (d *BookingDraft) ReadyToSubmit() bool {
	if !d.CanEnter(StepReviewPayment) {
		return false
	}
	if d.IsHomeService && (d.CustomerAddress == nil || *d.CustomerAddress == "") {
		return false
	}
	return d.PaymentMethod != nil
}

// SetService records the step-1 selection. Choosing a different service
// invalidates the schedule and staff picked for the old one.
func (d *BookingDraft) SetService(svc *Service, isHomeService bool) {
	if d.Service != nil && d.Service.ID != svc.ID {
		d.SelectedDate = nil
		d.SelectedTime = nil
		d.SelectedStaff = nil
	}
	d.Service = svc
	d.IsHomeService = isHomeService && svc.HomeEligible
	d.touch()
}

// SetDate records the step-2 date. A new date clears any previously chosen
// time, since that slot may no longer be valid.
func (d *BookingDraft) SetDate(date time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if d.SelectedDate == nil || !d.SelectedDate.Equal(day) {
		d.SelectedTime = nil
	}
	d.SelectedDate = &day
	d.touch()
}

func (d *BookingDraft) SetTime(t string) {
	d.SelectedTime = &t
	d.touch()
}

func (d *BookingDraft) SetStaff(staff *Staff) {
	d.SelectedStaff = staff
	d.touch()
}

func (d *BookingDraft) touch() {
	d.UpdatedAt = time.Now()
}

type CreateDraftRequest struct {
	ServiceID     *uuid.UUID `json:"service_id"`
	IsHomeService bool       `json:"is_home_service"`
}

type SelectServiceRequest struct {
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	IsHomeService bool      `json:"is_home_service"`
}

type ScheduleRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
	Time string `json:"time" binding:"omitempty,datetime=15:04"`
}

type SelectStaffRequest struct {
	StaffID uuid.UUID `json:"staff_id" binding:"required"`
}

type DraftDetailsRequest struct {
	CustomerAddress *string         `json:"customer_address" binding:"omitempty,max=500"`
	Notes           *string         `json:"notes" binding:"omitempty,max=1000"`
	PaymentMethod   *PaymentMethod  `json:"payment_method" binding:"omitempty,paymentmethod"`
	PaymentDetails  *PaymentDetails `json:"payment_details"`
}
