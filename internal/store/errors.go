package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialNotFound is returned when no credential row exists for
	// the requested (domain, holder) pair. Callers treat it as a cache
	// miss, never as a hard failure.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails before it reaches the driver.
	ErrBuildingSQLQuery = errors.New("error building sql query")
)
