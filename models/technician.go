package models

import (
	"time"
)

// Technician specialization codes.
const (
	SpecComputer  = "computer"
	SpecHousehold = "household"
	SpecMobile    = "mobile"
	SpecUniversal = "universal"
)

// Technician represents a repair technician
type Technician struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	Specialization *string   `json:"specialization"`
	HireDate       time.Time `json:"hire_date"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Snapshot captures the technician's field-value state for the change log.
func (t *Technician) Snapshot() Snapshot {
	return Snapshot{
		"full_name":      String(t.FullName),
		"specialization": optString(t.Specialization),
		"hire_date":      String(FormatDate(t.HireDate)),
		"is_active":      Bool(t.IsActive),
	}
}

// TechnicianForm represents the payload for creating/updating technicians
type TechnicianForm struct {
	FullName       string  `json:"full_name"`
	Specialization *string `json:"specialization"`
	HireDate       *string `json:"hire_date"`
	IsActive       *bool   `json:"is_active"`
}

// Validate validates the technician payload
func (f *TechnicianForm) Validate() []string {
	var errors []string

	if f.FullName == "" {
		errors = append(errors, "Full name is required")
	}
	if len(f.FullName) > 255 {
		errors = append(errors, "Full name must be less than 255 characters")
	}
	if f.HireDate != nil {
		if _, err := ParseDate(*f.HireDate); err != nil {
			errors = append(errors, "Hire date must be formatted as YYYY-MM-DD")
		}
	}

	return errors
}
