package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return &Service{
		Base:          Base{ID: uuid.New()},
		Name:          "Haircut",
		Category:      "hair",
		Duration:      60,
		BasePrice:     5000,
		HomeEligible:  true,
		HomeSurcharge: 1000,
		Active:        true,
	}
}

func testStaff() *Staff {
	return &Staff{
		Base:        Base{ID: uuid.New()},
		Name:        "Ayesha",
		Specialties: []string{"hair"},
		Available:   true,
	}
}

func TestDraftStepGating(t *testing.T) {
	draft := NewBookingDraft(uuid.New())

	assert.False(t, draft.CanEnter(StepDateTime), "empty draft cannot pass step 1")

	draft.SetService(testService(), false)
	assert.True(t, draft.CanEnter(StepDateTime))
	assert.False(t, draft.CanEnter(StepSelectStaff), "no schedule yet")

	draft.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	draft.SetTime("10:00")
	assert.True(t, draft.CanEnter(StepSelectStaff))

	// Missing staff blocks step 4; setting it unblocks the same draft.
	assert.False(t, draft.CanEnter(StepReviewPayment))
	draft.SetStaff(testStaff())
	assert.True(t, draft.CanEnter(StepReviewPayment))
}

func TestDraftNoSkipAhead(t *testing.T) {
	draft := NewBookingDraft(uuid.New())
	draft.SetService(testService(), false)
	draft.SetStaff(testStaff())

	// Staff is set but the schedule is not, so step 4 stays closed.
	assert.False(t, draft.CanEnter(StepReviewPayment))
}

func TestDraftDateChangeClearsTime(t *testing.T) {
	draft := NewBookingDraft(uuid.New())
	draft.SetService(testService(), false)

	draft.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	draft.SetTime("14:30")
	require.NotNil(t, draft.SelectedTime)

	draft.SetDate(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, draft.SelectedTime, "new date invalidates the chosen slot")

	// Re-setting the same date keeps the time.
	draft.SetTime("15:00")
	draft.SetDate(time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC))
	assert.NotNil(t, draft.SelectedTime)
}

func TestDraftServiceChangeResetsSelections(t *testing.T) {
	draft := NewBookingDraft(uuid.New())
	draft.SetService(testService(), false)
	draft.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	draft.SetTime("10:00")
	draft.SetStaff(testStaff())

	draft.SetService(testService(), false) // different ID
	assert.Nil(t, draft.SelectedDate)
	assert.Nil(t, draft.SelectedTime)
	assert.Nil(t, draft.SelectedStaff)
}

func TestDraftReadyToSubmit(t *testing.T) {
	draft := NewBookingDraft(uuid.New())
	draft.SetService(testService(), true)
	draft.SetDate(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	draft.SetTime("10:00")
	draft.SetStaff(testStaff())

	method := PaymentMethodCashOnService
	draft.PaymentMethod = &method

	// Home service without an address is not submittable.
	assert.False(t, draft.ReadyToSubmit())

	addr := "House 12, Street 4"
	draft.CustomerAddress = &addr
	assert.True(t, draft.ReadyToSubmit())

	empty := ""
	draft.CustomerAddress = &empty
	assert.False(t, draft.ReadyToSubmit())
}

func TestDraftHomeServiceRequiresEligibility(t *testing.T) {
	svc := testService()
	svc.HomeEligible = false

	draft := NewBookingDraft(uuid.New())
	draft.SetService(svc, true)
	assert.False(t, draft.IsHomeService, "ineligible service cannot be booked at home")
}
