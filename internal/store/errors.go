package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a credential with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrCredentialNotFound indicates that the requested credential does not exist.
	ErrCredentialNotFound = fmt.Errorf("%w: credential", ErrNotFound)

	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrAccountNotFound indicates that the requested account does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrTransactionNotFound indicates that the requested ledger entry does not
	// exist, or does not belong to the account it was requested for.
	ErrTransactionNotFound = fmt.Errorf("%w: transaction", ErrNotFound)

	// ErrCardNotFound indicates that the requested card does not exist.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a credential with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrDNIExists indicates that a profile with the given DNI already exists.
	ErrDNIExists = fmt.Errorf("%w: dni", ErrDuplicate)

	// ErrAccountExists indicates that the correlation ID already has an account.
	ErrAccountExists = fmt.Errorf("%w: account", ErrDuplicate)

	// ErrCardLinkedToAccount indicates the card number is already registered on
	// the same account.
	ErrCardLinkedToAccount = fmt.Errorf("%w: card already linked to this account", ErrDuplicate)

	// ErrCardLinkedElsewhere indicates the card number is registered on a
	// different account.
	ErrCardLinkedElsewhere = fmt.Errorf("%w: card linked to another account", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
