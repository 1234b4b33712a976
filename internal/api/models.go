package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmhouse/wallet-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	DNI       string `json:"dni"        validate:"required,max=20"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required,max=30"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// UpdateProfileRequest defines the payload for patching a user profile.
// Zero-valued fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty"  validate:"omitempty,max=100"`
	Email     string `json:"email,omitempty"      validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"      validate:"omitempty,max=30"`
}

// UpdateAccountRequest defines the payload for patching account details.
// Omitted fields keep their current value.
type UpdateAccountRequest struct {
	Alias    string `json:"alias,omitempty"    validate:"omitempty,min=3,max=60"`
	Currency string `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
}

// BalancePatchRequest defines the payload for the internal balance mutation
// endpoint. Type selects the direction of the adjustment.
type BalancePatchRequest struct {
	Amount int64  `json:"amount" validate:"required,gt=0"`
	Type   string `json:"type"   validate:"required,oneof=CREDIT DEBIT"`
}

// DepositRequest defines the payload for registering a deposit.
type DepositRequest struct {
	Amount      int64  `json:"amount"                validate:"required,gt=0"`
	Description string `json:"description,omitempty" validate:"omitempty,max=255"`
	Origin      string `json:"origin,omitempty"`
	CardID      string `json:"card_id,omitempty"`
}

// TransferRequest defines the payload for a transfer between accounts.
type TransferRequest struct {
	DestinationCVU string `json:"destination_cvu"       validate:"required,len=22,numeric"`
	Amount         int64  `json:"amount"                validate:"required,gt=0"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=255"`
}

// AppendTransactionRequest defines the payload accepted by the ledger's
// append endpoint.
type AppendTransactionRequest struct {
	AccountID   uuid.UUID `json:"account_id"        validate:"required"`
	Amount      int64     `json:"amount"            validate:"required,gt=0"`
	Description string    `json:"description"       validate:"omitempty,max=255"`
	Origin      string    `json:"origin"            validate:"required"`
	Destination string    `json:"destination"       validate:"required"`
	CardID      string    `json:"card_id,omitempty"`
	Type        string    `json:"type"              validate:"required,oneof=DEPOSIT CREDIT DEBIT"`
}

// CardAssociationRequest defines the payload for linking a card to an account.
type CardAssociationRequest struct {
	Number     string `json:"number"     validate:"required,min=13"`
	Expiration string `json:"expiration" validate:"required,len=5"`
}

// CardResponse is the client-facing view of a card. Only the masked number
// is ever exposed.
type CardResponse struct {
	ID         uuid.UUID           `json:"id"`
	AccountID  uuid.UUID           `json:"account_id"`
	Number     string              `json:"number"`
	Provider   domain.CardProvider `json:"provider"`
	Expiration string              `json:"expiration"`
	CreatedAt  time.Time           `json:"created_at"`
}

// NewCardResponse builds the masked view of a card.
func NewCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		AccountID:  card.AccountID,
		Number:     card.Masked(),
		Provider:   card.Provider,
		Expiration: card.Expiration,
		CreatedAt:  card.CreatedAt,
	}
}
