package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card validation errors
var (
	ErrEmptyCardID        = errors.New("card ID cannot be empty")
	ErrEmptyCardNumber    = errors.New("card number cannot be empty")
	ErrCardNumberTooShort = errors.New("card number must have at least 13 digits")
	ErrInvalidCardNumber  = errors.New("card number must be numeric")
	ErrEmptyExpiration    = errors.New("card expiration cannot be empty")
	ErrInvalidExpiration  = errors.New("card expiration must be MM/YY and in the future")
)

// CardProvider identifies the card network, derived from the leading digit of
// the card number.
type CardProvider string

const (
	ProviderVisa       CardProvider = "VISA"
	ProviderMastercard CardProvider = "MASTERCARD"
	ProviderAmex       CardProvider = "AMEX"
	ProviderDiscover   CardProvider = "DISCOVER"
	ProviderUnknown    CardProvider = "UNKNOWN"
)

// minCardNumberDigits is the shortest accepted card number after
// whitespace normalization.
const minCardNumberDigits = 13

// Card is a payment card linked to an account. The full number is stored;
// responses must expose only the masked form (see Masked).
type Card struct {
	ID         uuid.UUID    `json:"id"`
	AccountID  uuid.UUID    `json:"account_id"`
	Number     string       `json:"-"` // Full number, never serialized
	Provider   CardProvider `json:"provider"`
	Expiration string       `json:"expiration"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewCard creates a Card for the given account. The raw number is normalized
// (whitespace stripped) before validation; the provider is derived from the
// leading digit. Returns an error if validation fails.
func NewCard(accountID uuid.UUID, rawNumber, expiration string) (*Card, error) {
	number := NormalizeCardNumber(rawNumber)

	card := &Card{
		ID:         uuid.New(),
		AccountID:  accountID,
		Number:     number,
		Provider:   ProviderFor(number),
		Expiration: expiration,
		CreatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCardID
	}

	if c.AccountID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if c.Number == "" {
		return ErrEmptyCardNumber
	}

	if len(c.Number) < minCardNumberDigits {
		return ErrCardNumberTooShort
	}

	for _, char := range c.Number {
		if char < '0' || char > '9' {
			return ErrInvalidCardNumber
		}
	}

	if c.Expiration == "" {
		return ErrEmptyExpiration
	}

	if !validExpiry(c.Expiration, time.Now().UTC()) {
		return ErrInvalidExpiration
	}

	return nil
}

// Masked returns the only representation of the card number that may leave
// the service: "**** **** **** 1234".
func (c *Card) Masked() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return "**** **** **** " + c.Number[len(c.Number)-4:]
}

// NormalizeCardNumber strips all whitespace from a raw card number.
func NormalizeCardNumber(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// ProviderFor derives the card network from the leading digit of a
// normalized card number.
func ProviderFor(number string) CardProvider {
	if number == "" {
		return ProviderUnknown
	}
	switch number[0] {
	case '4':
		return ProviderVisa
	case '5':
		return ProviderMastercard
	case '3':
		return ProviderAmex
	case '6':
		return ProviderDiscover
	default:
		return ProviderUnknown
	}
}

// validExpiry reports whether expiration is MM/YY and strictly after the
// month of now. A card expiring this month is rejected.
func validExpiry(expiration string, now time.Time) bool {
	parts := strings.Split(expiration, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	year += 2000

	if year > now.Year() {
		return true
	}
	return year == now.Year() && month > int(now.Month())
}
