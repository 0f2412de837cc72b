package models

import (
	"fmt"

	"github.com/google/uuid"
)

// SearchType selects the matching strategy for unified search.
type SearchType string

const (
	SearchTypeTerm     SearchType = "term"
	SearchTypeFuzzy    SearchType = "fuzzy"
	SearchTypeSemantic SearchType = "semantic"
)

// ParseSearchType validates a search type from the request boundary.
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(s) {
	case SearchTypeTerm, SearchTypeFuzzy, SearchTypeSemantic:
		return SearchType(s), nil
	default:
		return "", fmt.Errorf("invalid search type %q", s)
	}
}

// ResultType tags which entity kind a search result carries.
type ResultType string

const (
	ResultTypeContact     ResultType = "contact"
	ResultTypeInteraction ResultType = "interaction"
)

// ContactResult is the contact payload of a search hit.
type ContactResult struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Birthday   *Date     `json:"birthday,omitempty"`
	LatestNews *string   `json:"latest_news,omitempty"`
}

// InteractionResult is the interaction payload of a search hit, joined with
// the contact's name for display.
type InteractionResult struct {
	ID               uuid.UUID `json:"id"`
	ContactID        uuid.UUID `json:"contact_id"`
	InteractionDate  Date      `json:"interaction_date"`
	Notes            string    `json:"notes"`
	Location         *string   `json:"location,omitempty"`
	ContactFirstName string    `json:"contact_first_name"`
	ContactLastName  string    `json:"contact_last_name"`
}

// SearchResult is a tagged union: exactly one of Contact or Interaction is
// set, matching ResultType.
type SearchResult struct {
	ResultType  ResultType         `json:"result_type"`
	Contact     *ContactResult     `json:"contact,omitempty"`
	Interaction *InteractionResult `json:"interaction,omitempty"`
	Score       float64            `json:"score"`
}

// NewContactSearchResult wraps a contact hit in the union.
func NewContactSearchResult(c *ContactResult, score float64) SearchResult {
	return SearchResult{ResultType: ResultTypeContact, Contact: c, Score: score}
}

// NewInteractionSearchResult wraps an interaction hit in the union.
func NewInteractionSearchResult(i *InteractionResult, score float64) SearchResult {
	return SearchResult{ResultType: ResultTypeInteraction, Interaction: i, Score: score}
}
