package domain

import "time"

// Timestamps holds the standard bookkeeping columns shared by persisted entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Field is a slot in a partial update. Set reports whether the caller supplied the field at all,
// so a zero Value can still be written deliberately.
type Field[T any] struct {
	Set   bool
	Value T
}

// SetTo returns a Field that will be written with v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// UserSummary is the public projection of a user embedded in other resources.
type UserSummary struct {
	UserID    string `json:"id" db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName" db:"last_name"`
	Email     string `json:"email" db:"email"`
}
