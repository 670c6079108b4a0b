package store

import "errors"

// Sentinel errors returned by repository and counter store methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a lookup or delete targets a user
	// that does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrKeyNotFound is returned by [CounterStore.Get] for a missing or
	// expired key.
	ErrKeyNotFound = errors.New("key not found")
)

// Connection and configuration errors.
var (
	// ErrUnsupportedDSN is returned when the database DSN scheme selects no
	// known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")

	// ErrUnsupportedCacheURL is returned when the cache URL selects no known
	// counter store.
	ErrUnsupportedCacheURL = errors.New("unsupported cache URL")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan user row")
)
