package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/glowbook/booking-api/internal/repository"
	"github.com/glowbook/booking-api/pkg/metrics"
)

// instrumented is embedded by every repository to report operation counts
// and latency. A nil metrics receiver is a no-op so tests can construct
// repositories bare.
type instrumented struct {
	metrics *metrics.Metrics
}

func (i instrumented) track(op string, start time.Time, err error) {
	if i.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	i.metrics.DatabaseOperations.WithLabelValues(op, status).Inc()
	i.metrics.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

type serviceRepository struct {
	instrumented
	db *sqlx.DB
}

type staffRepository struct {
	instrumented
	db *sqlx.DB
}

type bookingRepository struct {
	instrumented
	db *sqlx.DB
}

type customerRepository struct {
	instrumented
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB, m *metrics.Metrics) repository.ServiceRepository {
	return &serviceRepository{instrumented: instrumented{metrics: m}, db: db}
}

func NewStaffRepository(db *sqlx.DB, m *metrics.Metrics) repository.StaffRepository {
	return &staffRepository{instrumented: instrumented{metrics: m}, db: db}
}

func NewBookingRepository(db *sqlx.DB, m *metrics.Metrics) repository.BookingRepository {
	return &bookingRepository{instrumented: instrumented{metrics: m}, db: db}
}

func NewCustomerRepository(db *sqlx.DB, m *metrics.Metrics) repository.CustomerRepository {
	return &customerRepository{instrumented: instrumented{metrics: m}, db: db}
}

// withTx executes fn within a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
