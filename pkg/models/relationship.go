package models

import "strings"

// Relationship is the closed set of family relationship kinds. Freeform
// labels from the extraction collaborator are normalized through
// ParseRelationship; anything outside the known set becomes
// RelationshipRelated.
type Relationship string

const (
	RelationshipParent  Relationship = "parent"
	RelationshipChild   Relationship = "child"
	RelationshipSpouse  Relationship = "spouse"
	RelationshipSibling Relationship = "sibling"
	RelationshipRelated Relationship = "related_to"
)

// ParseRelationship normalizes a freeform label into a Relationship.
// Matching is case-insensitive; unknown labels map to RelationshipRelated.
func ParseRelationship(label string) Relationship {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "parent":
		return RelationshipParent
	case "child":
		return RelationshipChild
	case "spouse":
		return RelationshipSpouse
	case "sibling":
		return RelationshipSibling
	default:
		return RelationshipRelated
	}
}

// Inverse returns the relationship as seen from the other contact.
// Parent and child swap; spouse and sibling are their own inverse.
func (r Relationship) Inverse() Relationship {
	switch r {
	case RelationshipParent:
		return RelationshipChild
	case RelationshipChild:
		return RelationshipParent
	case RelationshipSpouse:
		return RelationshipSpouse
	case RelationshipSibling:
		return RelationshipSibling
	default:
		return RelationshipRelated
	}
}

func (r Relationship) String() string {
	return string(r)
}
