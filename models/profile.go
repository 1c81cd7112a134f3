package models

import (
	"strings"
	"time"
)

// Profile roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile represents an application user account. PasswordHash never leaves
// the server: it is excluded from JSON and from snapshots.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Snapshot captures the profile's field-value state for the change log.
// This is the snapshot-construction boundary for credentials: the password
// hash cannot appear here under any circumstance.
func (p *Profile) Snapshot() Snapshot {
	return Snapshot{
		"id":        String(p.ID),
		"email":     String(p.Email),
		"full_name": optString(p.FullName),
		"role":      String(p.Role),
	}
}

// PasswordChangeSnapshot is the snapshot recorded on either side of a
// password change: the regular profile fields plus the password_changed
// marker, never the password itself.
func (p *Profile) PasswordChangeSnapshot() Snapshot {
	s := p.Snapshot()
	s["password_changed"] = Bool(true)
	return s
}

// ProfileForm represents the payload for updating a profile
type ProfileForm struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// Validate validates the profile update payload
func (f *ProfileForm) Validate() []string {
	var errors []string

	if f.Email != nil && !isValidEmail(*f.Email) {
		errors = append(errors, "Email format is invalid")
	}
	if f.FullName != nil && len(*f.FullName) > 255 {
		errors = append(errors, "Full name must be less than 255 characters")
	}

	return errors
}

// RegisterForm represents the payload for creating an account
type RegisterForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Validate validates the registration payload
func (f *RegisterForm) Validate() []string {
	var errors []string

	if f.Email == "" || f.Password == "" || f.FullName == "" {
		errors = append(errors, "Email, password, and full name are required")
		return errors
	}
	if len(f.Password) < 6 {
		errors = append(errors, "Password must be at least 6 characters")
	}
	if !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	return errors
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	if strings.Count(email, "@") > 1 {
		return false
	}
	dot := strings.LastIndex(email, ".")
	return dot > at+1 && dot < len(email)-1
}
