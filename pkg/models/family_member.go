package models

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember is a directed, labeled relationship edge between two contacts:
// contact_id "has relationship Relationship to" family_contact_id. The
// ordered pair (contact_id, family_contact_id) is unique. The confirmation
// orchestrator always writes edges in pairs (forward plus inverse); nothing
// at the storage layer enforces that the pair stays consistent.
type FamilyMember struct {
	ID              uuid.UUID    `json:"id"`
	ContactID       uuid.UUID    `json:"contact_id"`
	FamilyContactID uuid.UUID    `json:"family_contact_id"`
	Relationship    Relationship `json:"relationship"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
