package models

import "github.com/google/uuid"

// Principal is the authenticated caller as resolved from a bearer token.
type Principal struct {
	UserID uuid.UUID
	Email  string
}
