package bookingflow

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
	"github.com/glowbook/booking-api/internal/service/availability"
	"github.com/glowbook/booking-api/internal/service/notification"
	"github.com/glowbook/booking-api/internal/service/pricing"
	"github.com/glowbook/booking-api/pkg/errors"
	"github.com/glowbook/booking-api/pkg/logger"
	"github.com/glowbook/booking-api/pkg/metrics"
)

type nowFunc func() time.Time

// Service drives the booking flow: it owns the draft lifecycle, gates step
// transitions, and performs the final persistence.
type Service struct {
	drafts       repository.DraftStore
	services     repository.ServiceRepository
	staff        repository.StaffRepository
	bookings     repository.BookingRepository
	customers    repository.CustomerRepository
	availability *availability.Resolver
	notifier     notification.Service
	logger       *logger.Logger
	metrics      *metrics.Metrics
	now          nowFunc
}

func NewService(
	drafts repository.DraftStore,
	services repository.ServiceRepository,
	staff repository.StaffRepository,
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	resolver *availability.Resolver,
	notifier notification.Service,
	log *logger.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		drafts:       drafts,
		services:     services,
		staff:        staff,
		bookings:     bookings,
		customers:    customers,
		availability: resolver,
		notifier:     notifier,
		logger:       log,
		metrics:      m,
		now:          time.Now,
	}
}

// DraftView is the draft plus derived step-validity flags, so the UI can
// gate navigation without re-implementing the predicates.
type DraftView struct {
	Draft        *model.BookingDraft `json:"draft"`
	CurrentStep  int                 `json:"current_step"`
	StepComplete map[int]bool        `json:"step_complete"`
	CanSubmit    bool                `json:"can_submit"`
	Pricing      *PricingView        `json:"pricing,omitempty"`
}

type PricingView struct {
	Total           int64            `json:"total"`
	FinalAmount     int64            `json:"final_amount"`
	MethodSelection *MethodSelection `json:"method_selection,omitempty"`
}

func (s *Service) view(draft *model.BookingDraft) *DraftView {
	v := &DraftView{
		Draft:       draft,
		CurrentStep: draft.Step,
		StepComplete: map[int]bool{
			model.StepSelectService: draft.StepComplete(model.StepSelectService),
			model.StepDateTime:      draft.StepComplete(model.StepDateTime),
			model.StepSelectStaff:   draft.StepComplete(model.StepSelectStaff),
		},
		CanSubmit: draft.ReadyToSubmit(),
	}

	if draft.Service != nil {
		total := pricing.ComputeTotal(draft.Service, draft.IsHomeService)
		p := &PricingView{Total: total, FinalAmount: total}
		if draft.PaymentMethod != nil {
			p.FinalAmount = pricing.ComputeFinalAmount(total, *draft.PaymentMethod)
			p.MethodSelection = &MethodSelection{
				Method:          *draft.PaymentMethod,
				FinalAmount:     p.FinalAmount,
				RequiresDetails: MethodRequiresDetails(*draft.PaymentMethod),
			}
		}
		v.Pricing = p
	}
	return v
}

// StartDraft creates (or resets) the customer's draft, optionally pre-seeded
// with a service.
func (s *Service) StartDraft(ctx context.Context, customerID uuid.UUID, req *model.CreateDraftRequest) (*DraftView, error) {
	draft := model.NewBookingDraft(customerID)

	if req != nil && req.ServiceID != nil {
		svc, err := s.services.Get(ctx, *req.ServiceID)
		if err != nil {
			if stderrors.Is(err, repository.ErrNotFound) {
				return nil, errors.NewNotFound("service", err)
			}
			return nil, fmt.Errorf("failed to load service: %w", err)
		}
		draft.SetService(svc, req.IsHomeService)
		draft.Step = model.StepDateTime
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return s.view(draft), nil
}

// GetDraft returns the customer's current draft.
func (s *Service) GetDraft(ctx context.Context, customerID uuid.UUID) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.view(draft), nil
}

// SelectService handles step 1.
func (s *Service) SelectService(ctx context.Context, customerID uuid.UUID, req *model.SelectServiceRequest) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}

	svc, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFound("service", err)
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if !svc.Active {
		return nil, errors.Validation("service_id", "service is no longer available")
	}
	if req.IsHomeService && !svc.HomeEligible {
		return nil, errors.Validation("is_home_service", "service is not available at home")
	}

	draft.SetService(svc, req.IsHomeService)
	return s.advance(ctx, draft, model.StepDateTime)
}

// SetSchedule handles step 2. Changing the date clears any previously
// selected time; time may be set in the same call or a later one.
func (s *Service) SetSchedule(ctx context.Context, customerID uuid.UUID, req *model.ScheduleRequest) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !draft.CanEnter(model.StepDateTime) {
		s.metrics.DraftSteps.WithLabelValues("2", "rejected").Inc()
		return nil, errors.Validation("service", "select a service first")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, errors.Validation("date", "invalid date")
	}
	if date.Before(s.today()) {
		return nil, errors.Validation("date", "date is in the past")
	}
	draft.SetDate(date)

	if req.Time != "" {
		slots, err := s.availability.AvailableSlots(ctx, staffOrNil(draft), date, draft.Service.Duration)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve slots: %w", err)
		}
		if date.Equal(s.today()) {
			slots = availability.FilterElapsed(slots, s.now())
		}
		if !contains(slots, req.Time) {
			return nil, errors.Validation("time", "slot is not available")
		}
		draft.SetTime(req.Time)
	}

	if draft.StepComplete(model.StepDateTime) {
		return s.advance(ctx, draft, model.StepSelectStaff)
	}
	return s.save(ctx, draft)
}

// SelectStaff handles step 3.
func (s *Service) SelectStaff(ctx context.Context, customerID uuid.UUID, req *model.SelectStaffRequest) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !draft.CanEnter(model.StepSelectStaff) {
		s.metrics.DraftSteps.WithLabelValues("3", "rejected").Inc()
		return nil, errors.Validation("schedule", "pick a date and time first")
	}

	member, err := s.staff.Get(ctx, req.StaffID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFound("staff", err)
		}
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	eligible := availability.EligibleStaff(draft.Service, []*model.Staff{member})
	if len(eligible) == 0 {
		return nil, errors.Validation("staff_id", "staff member does not offer this service")
	}

	draft.SetStaff(member)
	return s.advance(ctx, draft, model.StepReviewPayment)
}

// SetDetails handles step 4: address, notes and payment method. The returned
// view carries the method selection (final amount, requires_details) so the
// client knows whether a detail form must follow.
func (s *Service) SetDetails(ctx context.Context, customerID uuid.UUID, req *model.DraftDetailsRequest) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !draft.CanEnter(model.StepReviewPayment) {
		s.metrics.DraftSteps.WithLabelValues("4", "rejected").Inc()
		return nil, errors.Validation("staff", "complete the earlier steps first")
	}

	if req.CustomerAddress != nil {
		draft.CustomerAddress = req.CustomerAddress
	}
	if req.Notes != nil {
		draft.Notes = req.Notes
	}
	if req.PaymentMethod != nil {
		if !req.PaymentMethod.Valid() {
			return nil, errors.Validation("payment_method", "unsupported payment method")
		}
		draft.PaymentMethod = req.PaymentMethod
		draft.PaymentDetails = req.PaymentDetails
		if MethodRequiresDetails(*req.PaymentMethod) && req.PaymentDetails != nil {
			if err := ValidatePaymentDetails(*req.PaymentMethod, req.PaymentDetails); err != nil {
				return nil, err
			}
		}
	}

	return s.save(ctx, draft)
}

// GoBack moves the draft one step backwards without clearing any fields.
func (s *Service) GoBack(ctx context.Context, customerID uuid.UUID) (*DraftView, error) {
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if draft.Step > model.StepSelectService {
		draft.Step--
	}
	return s.save(ctx, draft)
}

// Submit is the booking persistence gateway. It re-checks the step-4
// completion predicate, computes the final amount, and writes booking,
// payment and customer profile in a single transaction. On a slot conflict
// the draft is pushed back to step 2 with its time cleared.
func (s *Service) Submit(ctx context.Context, customerID uuid.UUID) (*model.Booking, error) {
	if customerID == uuid.Nil {
		return nil, errors.Unauthorized(fmt.Errorf("no authenticated customer"))
	}

	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Unauthorized(fmt.Errorf("unknown customer"))
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	started := s.now()
	draft, err := s.loadDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkSubmittable(draft); err != nil {
		s.metrics.BookingsFailed.WithLabelValues("validation").Inc()
		return nil, err
	}

	if err := ValidatePaymentDetails(*draft.PaymentMethod, draft.PaymentDetails); err != nil {
		s.metrics.BookingsFailed.WithLabelValues("validation").Inc()
		return nil, err
	}

	total := pricing.ComputeTotal(draft.Service, draft.IsHomeService)
	finalAmount := pricing.ComputeFinalAmount(total, *draft.PaymentMethod)

	booking := &model.Booking{
		SalonID:         draft.Service.SalonID,
		CustomerID:      customerID,
		ServiceID:       draft.Service.ID,
		StaffID:         draft.SelectedStaff.ID,
		BookingDate:     *draft.SelectedDate,
		BookingTime:     *draft.SelectedTime,
		DurationMinutes: draft.Service.Duration,
		IsHomeService:   draft.IsHomeService,
		CustomerAddress: draft.CustomerAddress,
		Notes:           draft.Notes,
		TotalAmount:     finalAmount,
		Status:          model.BookingStatusPending,
	}

	payment := buildPayment(*draft.PaymentMethod, finalAmount, s.now)

	profile := &model.Customer{
		Base:    model.Base{ID: customerID},
		Email:   customer.Email,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Address: draft.CustomerAddress,
	}

	if err := s.bookings.CreateWithPayment(ctx, booking, payment, profile); err != nil {
		if stderrors.Is(err, repository.ErrSlotTaken) {
			s.metrics.SlotConflicts.Inc()
			s.metrics.BookingsFailed.WithLabelValues("slot_conflict").Inc()
			s.returnToSchedule(ctx, draft)
			return nil, errors.SlotConflict(err)
		}
		if stderrors.Is(err, repository.ErrPaymentWrite) {
			s.metrics.BookingsFailed.WithLabelValues("payment_record").Inc()
			return nil, errors.PaymentRecord(err)
		}
		s.metrics.BookingsFailed.WithLabelValues("persistence").Inc()
		return nil, errors.Persistence(err)
	}

	s.metrics.BookingsCreated.WithLabelValues(string(*draft.PaymentMethod)).Inc()
	s.metrics.SubmitLatency.Observe(s.now().Sub(started).Seconds())

	// The draft is consumed; step 5 is reached only through this path.
	if err := s.drafts.Delete(ctx, customerID); err != nil {
		s.logger.Error(err, "failed to delete consumed draft")
	}

	// Best effort: the send result is inspected for metrics and logs but a
	// failure never fails the booking.
	result := s.notifier.SendBookingConfirmation(ctx, customer, booking, draft.Service)
	if result.OK {
		s.metrics.ConfirmationMails.WithLabelValues("sent").Inc()
	} else {
		s.metrics.ConfirmationMails.WithLabelValues("failed").Inc()
		s.logger.Error(result.Err, "confirmation email failed",
			"booking_id", booking.ID.String())
	}

	return booking, nil
}

// GetBooking returns one of the customer's bookings.
func (s *Service) GetBooking(ctx context.Context, customerID, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.CustomerID != customerID {
		return nil, errors.NewNotFound("booking", nil)
	}
	return booking, nil
}

// ListBookings returns one page of the customer's bookings, newest first,
// together with the total count for the pagination envelope.
func (s *Service) ListBookings(ctx context.Context, customerID uuid.UUID, p model.Pagination) ([]*model.Booking, int, error) {
	bookings, err := s.bookings.List(ctx, &model.BookingFilters{CustomerID: customerID})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	page, size := p.Clamp()
	total := len(bookings)
	start := (page - 1) * size
	if start >= total {
		return []*model.Booking{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return bookings[start:end], total, nil
}

func (s *Service) checkSubmittable(draft *model.BookingDraft) error {
	switch {
	case draft.Service == nil:
		return errors.Validation("service", "no service selected")
	case draft.SelectedDate == nil || draft.SelectedTime == nil:
		return errors.Validation("schedule", "no date and time selected")
	case draft.SelectedStaff == nil:
		return errors.Validation("staff", "no staff member selected")
	case draft.IsHomeService && (draft.CustomerAddress == nil || *draft.CustomerAddress == ""):
		return errors.Validation("customer_address", "address is required for home service")
	case draft.PaymentMethod == nil:
		return errors.Validation("payment_method", "no payment method selected")
	}
	return nil
}

func (s *Service) returnToSchedule(ctx context.Context, draft *model.BookingDraft) {
	draft.SelectedTime = nil
	draft.Step = model.StepDateTime
	if err := s.drafts.Save(ctx, draft); err != nil {
		s.logger.Error(err, "failed to save draft after slot conflict")
	}
}

func (s *Service) advance(ctx context.Context, draft *model.BookingDraft, to int) (*DraftView, error) {
	if draft.CanEnter(to) && to > draft.Step {
		draft.Step = to
		s.metrics.DraftSteps.WithLabelValues(fmt.Sprintf("%d", to), "advanced").Inc()
	}
	return s.save(ctx, draft)
}

func (s *Service) save(ctx context.Context, draft *model.BookingDraft) (*DraftView, error) {
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return s.view(draft), nil
}

func (s *Service) loadDraft(ctx context.Context, customerID uuid.UUID) (*model.BookingDraft, error) {
	draft, err := s.drafts.Get(ctx, customerID)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFound("draft", err)
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func staffOrNil(draft *model.BookingDraft) uuid.UUID {
	if draft.SelectedStaff != nil {
		return draft.SelectedStaff.ID
	}
	return uuid.Nil
}

func contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
