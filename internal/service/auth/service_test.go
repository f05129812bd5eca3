package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
	pkgauth "github.com/glowbook/booking-api/pkg/auth"
	"github.com/glowbook/booking-api/pkg/errors"
)

type memCustomerRepo struct {
	byID    map[uuid.UUID]*model.Customer
	byEmail map[string]*model.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{
		byID:    make(map[uuid.UUID]*model.Customer),
		byEmail: make(map[string]*model.Customer),
	}
}

func (m *memCustomerRepo) Create(ctx context.Context, customer *model.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m.byID[customer.ID] = customer
	m.byEmail[customer.Email] = customer
	return nil
}

func (m *memCustomerRepo) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return customer, nil
}

func (m *memCustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	customer, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return customer, nil
}

func (m *memCustomerRepo) Update(ctx context.Context, customer *model.Customer) error {
	m.byID[customer.ID] = customer
	m.byEmail[customer.Email] = customer
	return nil
}

func newTestService() (*Service, *memCustomerRepo) {
	repo := newMemCustomerRepo()
	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, jwtSvc, time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "fatima@example.com",
		Name:     "Fatima Khan",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.Customer.PasswordHash, "hash must never leave the service")

	login, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "fatima@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotNil(t, login.Customer.LastLoginAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := &model.RegisterRequest{Email: "fatima@example.com", Name: "Fatima", Password: "correct horse"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBadRequest))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "fatima@example.com",
		Name:     "Fatima",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "fatima@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestValidateToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Email:    "fatima@example.com",
		Name:     "Fatima",
		Password: "correct horse",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Customer.ID, claims.CustomerID)

	_, err = svc.ValidateToken(ctx, "garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
