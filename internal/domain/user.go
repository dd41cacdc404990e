package domain

// User is the domain model for drivers requesting spots. Users are
// seeded at initialization and immutable afterwards; identity is an
// opaque numeric id supplied by the caller.
type User struct {
	ID      int
	Role    string
	Premium bool
}
