package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	correlationID := uuid.New()

	profile, err := NewProfile(correlationID, "Maria", "Lopez", "30123456", "maria@example.com", "+54 11 5555 0001")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if profile.CorrelationID != correlationID {
		t.Errorf("Expected correlation ID %s, got %s", correlationID, profile.CorrelationID)
	}

	if profile.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Profile {
		return &Profile{
			CorrelationID: uuid.New(),
			FirstName:     "Maria",
			LastName:      "Lopez",
			DNI:           "30123456",
			Email:         "maria@example.com",
			Phone:         "+54 11 5555 0001",
		}
	}

	tests := []struct {
		name     string
		mutate   func(p *Profile)
		expected error
	}{
		{
			name:     "valid_profile",
			mutate:   func(p *Profile) {},
			expected: nil,
		},
		{
			name:     "nil_correlation_id",
			mutate:   func(p *Profile) { p.CorrelationID = uuid.Nil },
			expected: ErrEmptyCorrelationID,
		},
		{
			name:     "empty_first_name",
			mutate:   func(p *Profile) { p.FirstName = "" },
			expected: ErrEmptyFirstName,
		},
		{
			name:     "empty_last_name",
			mutate:   func(p *Profile) { p.LastName = "" },
			expected: ErrEmptyLastName,
		},
		{
			name:     "empty_dni",
			mutate:   func(p *Profile) { p.DNI = "" },
			expected: ErrEmptyDNI,
		},
		{
			name:     "non_numeric_dni",
			mutate:   func(p *Profile) { p.DNI = "30.123.456" },
			expected: ErrInvalidDNI,
		},
		{
			name:     "empty_email",
			mutate:   func(p *Profile) { p.Email = "" },
			expected: ErrEmptyEmail,
		},
		{
			name:     "malformed_email",
			mutate:   func(p *Profile) { p.Email = "maria-at-example" },
			expected: ErrInvalidEmail,
		},
		{
			name:     "empty_phone_is_allowed",
			mutate:   func(p *Profile) { p.Phone = "" },
			expected: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid()
			tt.mutate(p)

			if err := p.Validate(); err != tt.expected {
				t.Errorf("Expected error %v, got %v", tt.expected, err)
			}
		})
	}
}
