package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Staff is a service provider. A staff member is eligible for a service iff
// the service's category is in their specialty set.
type Staff struct {
	Base
	SalonID     uuid.UUID      `db:"salon_id" json:"salon_id"`
	Name        string         `db:"name" json:"name"`
	Email       *string        `db:"email" json:"email,omitempty"`
	Phone       *string        `db:"phone" json:"phone,omitempty"`
	Specialties pq.StringArray `db:"specialties" json:"specialties"`
	Available   bool           `db:"available" json:"available"`
}

// HasSpecialty reports whether the staff member covers the given category.
func (s *Staff) HasSpecialty(category string) bool {
	for _, sp := range s.Specialties {
		if sp == category {
			return true
		}
	}
	return false
}
