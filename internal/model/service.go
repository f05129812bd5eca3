package model

import (
	"github.com/google/uuid"
)

// Service is a bookable offering owned by a salon. Prices are stored in the
// currency's minor unit, so no float arithmetic touches money.
type Service struct {
	Base
	SalonID       uuid.UUID `db:"salon_id" json:"salon_id"`
	Name          string    `db:"name" json:"name"`
	Category      string    `db:"category" json:"category"`
	Duration      int       `db:"duration" json:"duration"` // in minutes
	BasePrice     int64     `db:"base_price" json:"base_price"`
	HomeEligible  bool      `db:"home_eligible" json:"home_eligible"`
	HomeSurcharge int64     `db:"home_surcharge" json:"home_surcharge"`
	Active        bool      `db:"active" json:"active"`
}

type ServiceFilters struct {
	SalonID  uuid.UUID
	Category string
}
