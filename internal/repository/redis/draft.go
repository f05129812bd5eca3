package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/glowbook/booking-api/internal/model"
	"github.com/glowbook/booking-api/internal/repository"
	"github.com/glowbook/booking-api/pkg/metrics"
)

type draftStore struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewClient connects to Redis using a URL of the form
// redis://[:password@]host:port/db.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewDraftStore(client *redis.Client, ttl time.Duration, m *metrics.Metrics) repository.DraftStore {
	return &draftStore{client: client, ttl: ttl, metrics: m}
}

func draftKey(customerID uuid.UUID) string {
	return "booking:draft:" + customerID.String()
}

// observe counts one store operation. Expired or absent drafts count as a
// miss, not an error.
func (s *draftStore) observe(op string, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = "miss"
	case err != nil:
		status = "error"
	}
	s.metrics.DraftStoreOperations.WithLabelValues(op, status).Inc()
}

func (s *draftStore) Get(ctx context.Context, customerID uuid.UUID) (_ *model.BookingDraft, err error) {
	defer func() { s.observe("get", err) }()

	payload, err := s.client.Get(ctx, draftKey(customerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft model.BookingDraft
	if err = json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *draftStore) Save(ctx context.Context, draft *model.BookingDraft) (err error) {
	defer func() { s.observe("save", err) }()

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err = s.client.Set(ctx, draftKey(draft.CustomerID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *draftStore) Delete(ctx context.Context, customerID uuid.UUID) (err error) {
	defer func() { s.observe("delete", err) }()

	if err = s.client.Del(ctx, draftKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
