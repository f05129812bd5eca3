package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
	"github.com/glowbook/booking-api/pkg/auth"
	"github.com/glowbook/booking-api/pkg/errors"
)

const bcryptCost = 12

type Service struct {
	customers repository.CustomerRepository
	jwtSvc    auth.JWTService
	expiry    time.Duration
}

func NewService(customers repository.CustomerRepository, jwtSvc auth.JWTService, expiry time.Duration) *Service {
	return &Service{
		customers: customers,
		jwtSvc:    jwtSvc,
		expiry:    expiry,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if _, err := s.customers.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.NewBadRequest("email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	customer := &model.Customer{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if req.Phone != "" {
		customer.Phone = &req.Phone
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return s.issueToken(customer)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	customer, err := s.customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.Unauthorized(fmt.Errorf("invalid credentials"))
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	now := time.Now()
	customer.LastLoginAt = &now
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	return s.issueToken(customer)
}

// ValidateToken resolves the claims behind a bearer token.
func (s *Service) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, errors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) issueToken(customer *model.Customer) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(customer.ID, customer.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Copy before stripping the hash; the caller may still hold the stored
	// record.
	sanitized := *customer
	sanitized.PasswordHash = ""
	return &model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.expiry),
		Customer:    &sanitized,
	}, nil
}
