package notification

import (
	"context"
	"fmt"

	"github.com/glowbook/booking-api/internal/email"
	"github.com/glowbook/booking-api/internal/model"
)

// SendResult makes the best-effort outcome explicit: the caller may discard
// it, but tests and metrics can assert on it.
type SendResult struct {
	OK  bool
	Err error
}

type Service interface {
	SendBookingConfirmation(ctx context.Context, customer *model.Customer, booking *model.Booking, service *model.Service) SendResult
}

type service struct {
	emailSvc email.Service
}

func NewService(emailSvc email.Service) Service {
	return &service{emailSvc: emailSvc}
}

func (s *service) SendBookingConfirmation(ctx context.Context, customer *model.Customer, booking *model.Booking, svc *model.Service) SendResult {
	location := "at the salon"
	if booking.IsHomeService && booking.CustomerAddress != nil {
		location = "at " + *booking.CustomerAddress
	}

	subject := fmt.Sprintf("Booking confirmed: %s on %s", svc.Name, booking.BookingDate.Format("Mon, 2 Jan 2006"))
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s is in.\n\nDate: %s\nTime: %s\nLocation: %s\nTotal: %d\n\nBooking reference: %s\n",
		customer.Name,
		svc.Name,
		booking.BookingDate.Format("2006-01-02"),
		booking.BookingTime,
		location,
		booking.TotalAmount,
		booking.ID.String(),
	)

	if err := s.emailSvc.SendCustom(ctx, customer.Email, subject, body); err != nil {
		return SendResult{OK: false, Err: fmt.Errorf("failed to send confirmation: %w", err)}
	}
	return SendResult{OK: true}
}
