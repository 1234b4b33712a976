package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile validation errors
var (
	ErrEmptyFirstName = errors.New("first name cannot be empty")
	ErrEmptyLastName  = errors.New("last name cannot be empty")
	ErrEmptyDNI       = errors.New("dni cannot be empty")
	ErrInvalidDNI     = errors.New("dni must be numeric")
)

// Profile is the personal record owned by the users service, keyed by the
// correlation ID generated during registration.
type Profile struct {
	CorrelationID uuid.UUID `json:"correlation_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DNI           string    `json:"dni"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewProfile creates a new Profile bound to the given correlation ID.
// Returns an error if validation fails.
func NewProfile(correlationID uuid.UUID, firstName, lastName, dni, email, phone string) (*Profile, error) {
	p := &Profile{
		CorrelationID: correlationID,
		FirstName:     firstName,
		LastName:      lastName,
		DNI:           dni,
		Email:         email,
		Phone:         phone,
		CreatedAt:     time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.CorrelationID == uuid.Nil {
		return ErrEmptyCorrelationID
	}

	if p.FirstName == "" {
		return ErrEmptyFirstName
	}

	if p.LastName == "" {
		return ErrEmptyLastName
	}

	if p.DNI == "" {
		return ErrEmptyDNI
	}

	for _, char := range p.DNI {
		if char < '0' || char > '9' {
			return ErrInvalidDNI
		}
	}

	if p.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(p.Email) {
		return ErrInvalidEmail
	}

	return nil
}
