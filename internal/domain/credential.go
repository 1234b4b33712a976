package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Credential validation errors
var (
	ErrEmptyCredentialID   = errors.New("credential ID cannot be empty")
	ErrEmptyCorrelationID  = errors.New("correlation ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
)

// Credential is the locally owned authentication record. It carries the
// correlation ID generated at registration time, which is the key shared by
// the profile and account records created for the same user.
type Credential struct {
	ID             uuid.UUID `json:"id"`
	CorrelationID  uuid.UUID `json:"correlation_id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewCredential creates a new Credential for the given correlation ID, email
// and plaintext password. It generates a new UUID for the credential ID.
// Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the
// credential.
func NewCredential(correlationID uuid.UUID, email, password string) (*Credential, error) {
	cred := &Credential{
		ID:            uuid.New(),
		CorrelationID: correlationID,
		Email:         email,
		Password:      password,
		CreatedAt:     time.Now().UTC(),
	}

	if err := cred.Validate(); err != nil {
		return nil, err
	}

	return cred, nil
}

// Validate checks if the Credential has valid data.
// Returns an error if any field fails validation.
func (c *Credential) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCredentialID
	}

	if c.CorrelationID == uuid.Nil {
		return ErrEmptyCorrelationID
	}

	if c.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(c.Email) {
		return ErrInvalidEmail
	}

	if c.Password != "" {
		if len(c.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(c.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if c.HashedPassword == "" {
		// Credentials loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a single '@'
// with a dotted domain after it. Delivery-level validation belongs to the
// caller of the registration endpoint.
func validEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 {
		return false
	}

	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
