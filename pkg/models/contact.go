package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a person the owner tracks. latest_news is a last-write-wins
// summary updated as a side effect of interaction confirmation, not a log.
type Contact struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Birthday   *Date     `json:"birthday,omitempty"`
	LatestNews *string   `json:"latest_news,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ContactUpdate carries the optional fields of a contact PATCH. Nil means
// "leave unchanged".
type ContactUpdate struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Birthday   *Date   `json:"birthday"`
	LatestNews *string `json:"latest_news"`
}

// FamilyMemberWithDetails is a family edge joined with the related contact's
// name, for display.
type FamilyMemberWithDetails struct {
	ID              uuid.UUID    `json:"id"`
	FamilyContactID uuid.UUID    `json:"family_contact_id"`
	Relationship    Relationship `json:"relationship"`
	FirstName       string       `json:"first_name"`
	LastName        string       `json:"last_name"`
}

// ContactList is one page of contacts with pagination totals.
type ContactList struct {
	Contacts   []*Contact `json:"contacts"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// ContactSummary aggregates a contact with interaction statistics, recent
// activity, and family links.
type ContactSummary struct {
	Contact             *Contact                  `json:"contact"`
	TotalInteractions   int                       `json:"total_interactions"`
	RecentInteractions  []*Interaction            `json:"recent_interactions"`
	FamilyMembers       []*FamilyMemberWithDetails `json:"family_members"`
	LastInteractionDate *Date                     `json:"last_interaction_date,omitempty"`
}
