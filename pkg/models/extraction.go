package models

import (
	"github.com/google/uuid"

	"github.com/SergeNasr/memoro/pkg/jsonutil"
)

// Extracted* shapes are the untrusted output of the LLM extraction
// collaborator. Every field except interaction notes/date and the family
// relationship label may be null. Confidence scores are carried through to
// clients for display and never drive persistence decisions.

// ExtractedContact is the contact identity the LLM pulled out of free text.
type ExtractedContact struct {
	FirstName  *string         `json:"first_name"`
	LastName   *string         `json:"last_name"`
	Birthday   *Date           `json:"birthday"`
	Confidence jsonutil.Number `json:"confidence"`
}

// ExtractedInteraction is the interaction the LLM pulled out of free text.
type ExtractedInteraction struct {
	Notes           string          `json:"notes"`
	Location        *string         `json:"location"`
	InteractionDate Date            `json:"interaction_date"`
	Confidence      jsonutil.Number `json:"confidence"`
}

// ExtractedFamilyMember is a family mention the LLM pulled out of free text.
type ExtractedFamilyMember struct {
	FirstName    *string         `json:"first_name"`
	LastName     *string         `json:"last_name"`
	Relationship string          `json:"relationship"`
	Confidence   jsonutil.Number `json:"confidence"`
}

// AnalyzeResult is the full extraction for one note.
type AnalyzeResult struct {
	Contact       ExtractedContact        `json:"contact"`
	Interaction   ExtractedInteraction    `json:"interaction"`
	FamilyMembers []ExtractedFamilyMember `json:"family_members"`
	RawText       string                  `json:"raw_text"`
}

// ConfirmRequest is the reviewed extraction the client sends back for
// persistence. It is the AnalyzeResult minus the raw text, possibly edited.
type ConfirmRequest struct {
	Contact       ExtractedContact        `json:"contact"`
	Interaction   ExtractedInteraction    `json:"interaction"`
	FamilyMembers []ExtractedFamilyMember `json:"family_members"`
}

// ConfirmResult reports what one confirmation persisted.
type ConfirmResult struct {
	ContactID           uuid.UUID `json:"contact_id"`
	InteractionID       uuid.UUID `json:"interaction_id"`
	FamilyMembersLinked int       `json:"family_members_linked"`
}
