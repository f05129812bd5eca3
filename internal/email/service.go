package email

import (
	"context"
)

// Service sends outbound mail. Callers treat delivery as best effort; see
// notification.SendResult.
type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
