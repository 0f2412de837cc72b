package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SergeNasr/memoro/pkg/database"
	"github.com/SergeNasr/memoro/pkg/models"
)

// FamilyMemberRepository defines the interface for family edge data access.
type FamilyMemberRepository interface {
	// CreateIgnoreDuplicate inserts a family edge, returning whether a new
	// row was created. An existing (contact_id, family_contact_id) pair is
	// left untouched, including its relationship label.
	CreateIgnoreDuplicate(ctx context.Context, edge *models.FamilyMember) (bool, error)
	// ListWithDetails returns a contact's family edges joined with the
	// related contact's name.
	ListWithDetails(ctx context.Context, userID, contactID uuid.UUID) ([]*models.FamilyMemberWithDetails, error)
}

// familyMemberRepository implements FamilyMemberRepository using PostgreSQL.
type familyMemberRepository struct{}

// NewFamilyMemberRepository creates a new family member repository.
func NewFamilyMemberRepository() FamilyMemberRepository {
	return &familyMemberRepository{}
}

// CreateIgnoreDuplicate inserts the edge with ON CONFLICT DO NOTHING.
// RETURNING yields no row when the pair already exists.
func (r *familyMemberRepository) CreateIgnoreDuplicate(ctx context.Context, edge *models.FamilyMember) (bool, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return false, fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO family_member (contact_id, family_contact_id, relationship)
		VALUES ($1, $2, $3)
		ON CONFLICT (contact_id, family_contact_id) DO NOTHING
		RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		edge.ContactID,
		edge.FamilyContactID,
		edge.Relationship,
	).Scan(&edge.ID, &edge.CreatedAt, &edge.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create family member: %w", err)
	}

	return true, nil
}

// ListWithDetails returns family edges for a contact with related names,
// scoped to the owner through the contact join.
func (r *familyMemberRepository) ListWithDetails(ctx context.Context, userID, contactID uuid.UUID) ([]*models.FamilyMemberWithDetails, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT fm.id, fm.family_contact_id, fm.relationship, fc.first_name, fc.last_name
		FROM family_member fm
		JOIN contact c ON c.id = fm.contact_id
		JOIN contact fc ON fc.id = fm.family_contact_id
		WHERE c.user_id = $1 AND fm.contact_id = $2
		ORDER BY fc.last_name, fc.first_name`

	rows, err := scope.Conn.Query(ctx, query, userID, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	defer rows.Close()

	var members []*models.FamilyMemberWithDetails
	for rows.Next() {
		var m models.FamilyMemberWithDetails
		if err := rows.Scan(&m.ID, &m.FamilyContactID, &m.Relationship, &m.FirstName, &m.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating family members: %w", err)
	}

	return members, nil
}

// Ensure familyMemberRepository implements FamilyMemberRepository at compile time.
var _ FamilyMemberRepository = (*familyMemberRepository)(nil)
