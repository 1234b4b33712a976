package domain

import (
	crand "crypto/rand"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account validation errors
var (
	ErrEmptyAccountID  = errors.New("account ID cannot be empty")
	ErrInvalidCVU      = errors.New("cvu must be exactly 22 digits")
	ErrEmptyAlias      = errors.New("alias cannot be empty")
	ErrNegativeBalance = errors.New("balance cannot be negative")
)

// CVULength is the number of digits in a CVU account identifier.
const CVULength = 22

// DefaultCurrency is assigned to accounts created during registration.
const DefaultCurrency = "ARS"

// Account is the wallet account owned by the accounts service. Balance is
// carried in minor units (centavos) and is only ever mutated through the
// balance-update primitive; the transaction history lives in the ledger.
type Account struct {
	ID            uuid.UUID `json:"id"`
	CorrelationID uuid.UUID `json:"correlation_id"`
	CVU           string    `json:"cvu"`
	Alias         string    `json:"alias"`
	Balance       int64     `json:"balance"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewAccount creates a zero-balance account for the given correlation ID,
// generating a fresh CVU and a three-word alias.
// Returns an error if validation fails.
func NewAccount(correlationID uuid.UUID) (*Account, error) {
	account := &Account{
		ID:            uuid.New(),
		CorrelationID: correlationID,
		CVU:           GenerateCVU(),
		Alias:         GenerateAlias(),
		Balance:       0,
		Currency:      DefaultCurrency,
		CreatedAt:     time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.CorrelationID == uuid.Nil {
		return ErrEmptyCorrelationID
	}

	if !ValidCVU(a.CVU) {
		return ErrInvalidCVU
	}

	if a.Alias == "" {
		return ErrEmptyAlias
	}

	if a.Balance < 0 {
		return ErrNegativeBalance
	}

	return nil
}

// ValidCVU reports whether s is a well-formed CVU: exactly 22 digits.
func ValidCVU(s string) bool {
	if len(s) != CVULength {
		return false
	}
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// GenerateCVU returns a random 22-digit account identifier. The digits
// are drawn from crypto/rand so CVUs cannot be predicted from one
// another.
func GenerateCVU() string {
	buf := make([]byte, CVULength)
	if _, err := crand.Read(buf); err != nil {
		// ALLOW-PANIC: the platform CSPRNG is unavailable
		panic(err)
	}

	var b strings.Builder
	b.Grow(CVULength)
	for _, c := range buf {
		b.WriteByte('0' + c%10)
	}
	return b.String()
}

// GenerateAlias returns a dot-separated three-word alias, e.g. "rio.lago.sol".
func GenerateAlias() string {
	w1 := aliasWords[rand.Intn(len(aliasWords))]
	w2 := aliasWords[rand.Intn(len(aliasWords))]
	w3 := aliasWords[rand.Intn(len(aliasWords))]
	return w1 + "." + w2 + "." + w3
}

// aliasWords is the pool used for alias generation. Collisions are resolved
// by the accounts store unique constraint, not here.
var aliasWords = []string{
	"rio", "lago", "sol", "luna", "monte", "valle", "cielo", "mar",
	"viento", "piedra", "selva", "nube", "fuego", "tierra", "trigo",
	"pampa", "costa", "delta", "isla", "cumbre", "arena", "bosque",
	"cobre", "plata", "norte", "sur", "este", "oeste", "puma", "condor",
	"tigre", "zorro", "ciervo", "halcon", "roble", "sauce", "cedro",
	"lirio", "jazmin", "clavel",
}
