package models

import "testing"

func TestParseRelationship(t *testing.T) {
	tests := []struct {
		label    string
		expected Relationship
	}{
		{"parent", RelationshipParent},
		{"Parent", RelationshipParent},
		{"CHILD", RelationshipChild},
		{"spouse", RelationshipSpouse},
		{"sibling", RelationshipSibling},
		{"  sibling  ", RelationshipSibling},
		{"cousin", RelationshipRelated},
		{"grandmother", RelationshipRelated},
		{"", RelationshipRelated},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseRelationship(tt.label); got != tt.expected {
				t.Errorf("ParseRelationship(%q) = %q, want %q", tt.label, got, tt.expected)
			}
		})
	}
}

func TestRelationshipInverse(t *testing.T) {
	tests := []struct {
		in       Relationship
		expected Relationship
	}{
		{RelationshipParent, RelationshipChild},
		{RelationshipChild, RelationshipParent},
		{RelationshipSpouse, RelationshipSpouse},
		{RelationshipSibling, RelationshipSibling},
		{RelationshipRelated, RelationshipRelated},
	}

	for _, tt := range tests {
		if got := tt.in.Inverse(); got != tt.expected {
			t.Errorf("%q.Inverse() = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

// Inverting twice must always round-trip for the known kinds.
func TestRelationshipInverseRoundTrip(t *testing.T) {
	for _, r := range []Relationship{RelationshipParent, RelationshipChild, RelationshipSpouse, RelationshipSibling} {
		if got := r.Inverse().Inverse(); got != r {
			t.Errorf("%q.Inverse().Inverse() = %q, want %q", r, got, r)
		}
	}
}
