package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
	"github.com/glowbook/booking-api/internal/service/availability"
	"github.com/glowbook/booking-api/pkg/errors"
)

// Service serves the browse surface: active services, eligible staff per
// service, and bookable slots. Listings go through a short-lived
// read-through cache since the catalog changes rarely compared to how often
// the booking flow reads it.
type Service struct {
	services repository.ServiceRepository
	staff    repository.StaffRepository
	resolver *availability.Resolver
	cache    *gocache.Cache
}

func NewService(services repository.ServiceRepository, staff repository.StaffRepository, resolver *availability.Resolver, cacheTTL time.Duration) *Service {
	return &Service{
		services: services,
		staff:    staff,
		resolver: resolver,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) ListServices(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	key := cacheKey(filters)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.services.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.Set(key, services, gocache.DefaultExpiration)
	return services, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewNotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

// EligibleStaff returns the staff who can perform the service, in roster
// order. An empty list is a valid answer, not an error.
func (s *Service) EligibleStaff(ctx context.Context, serviceID uuid.UUID) ([]*model.Staff, error) {
	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	roster, err := s.staff.ListBySalon(ctx, svc.SalonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	return availability.EligibleStaff(svc, roster), nil
}

// AvailableSlots returns the open HH:MM slots for the staff member, date and
// service duration.
func (s *Service) AvailableSlots(ctx context.Context, staffID, serviceID uuid.UUID, date time.Time) ([]string, error) {
	svc, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	slots, err := s.resolver.AvailableSlots(ctx, staffID, date, svc.Duration)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if date.Year() == now.Year() && date.YearDay() == now.YearDay() {
		slots = availability.FilterElapsed(slots, now)
	}
	return slots, nil
}

func cacheKey(filters *model.ServiceFilters) string {
	if filters == nil {
		return "services:all"
	}
	return fmt.Sprintf("services:%s:%s", filters.SalonID, filters.Category)
}
