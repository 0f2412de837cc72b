package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one recorded meeting/conversation with a contact. The
// contact linkage is immutable: updates may change date, notes, and location
// but never re-parent an interaction.
type Interaction struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ContactID       uuid.UUID `json:"contact_id"`
	InteractionDate Date      `json:"interaction_date"`
	Notes           string    `json:"notes"`
	Location        *string   `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InteractionUpdate carries the optional fields of an interaction PATCH.
type InteractionUpdate struct {
	InteractionDate *Date   `json:"interaction_date"`
	Notes           *string `json:"notes"`
	Location        *string `json:"location"`
}
