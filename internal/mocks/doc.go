// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// Every mock follows the same pattern: function fields (`CreateFn`, ...)
// override individual methods, and a map-backed default implementation
// covers the common case so most tests need no setup beyond the
// constructor.
//
// Usage:
//
//	import "github.com/dmhouse/wallet-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    credentials := mocks.NewMockCredentialStore()
//	    credentials.CreateFn = func(ctx context.Context, cred *domain.Credential) error {
//	        return errors.New("boom")
//	    }
//
//	    // Use the mock in your test...
//	}
package mocks
