package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/database"
	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/repositories"
)

// defaultFirstName stands in when the extraction produced no first name, so
// a confirmation never fails on a missing identity.
const defaultFirstName = "Unknown"

// InteractionService defines the interface for interaction operations.
type InteractionService interface {
	// Confirm persists one reviewed extraction atomically: it finds or
	// creates the contact, records the interaction, overwrites the contact's
	// latest news, and links mentioned family members bidirectionally.
	Confirm(ctx context.Context, userID uuid.UUID, req *models.ConfirmRequest) (*models.ConfirmResult, error)
	Get(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error)
	Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error)
	Delete(ctx context.Context, userID, interactionID uuid.UUID) error
}

// interactionService implements InteractionService.
type interactionService struct {
	contactRepo     repositories.ContactRepository
	interactionRepo repositories.InteractionRepository
	familyRepo      repositories.FamilyMemberRepository
	logger          *zap.Logger
}

// NewInteractionService creates a new interaction service with dependencies.
func NewInteractionService(
	contactRepo repositories.ContactRepository,
	interactionRepo repositories.InteractionRepository,
	familyRepo repositories.FamilyMemberRepository,
	logger *zap.Logger,
) InteractionService {
	return &interactionService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		familyRepo:      familyRepo,
		logger:          logger.Named("interactions"),
	}
}

// Confirm runs the whole persistence as one transaction on the request's
// pinned connection; a failure at any step leaves no partial rows behind.
func (s *interactionService) Confirm(ctx context.Context, userID uuid.UUID, req *models.ConfirmRequest) (*models.ConfirmResult, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	tx, err := scope.Conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	firstName := defaultFirstName
	if req.Contact.FirstName != nil && *req.Contact.FirstName != "" {
		firstName = *req.Contact.FirstName
	}
	lastName := ""
	if req.Contact.LastName != nil {
		lastName = *req.Contact.LastName
	}

	contact, contactCreated, err := s.contactRepo.FindOrCreate(ctx, userID, firstName, lastName, req.Contact.Birthday, &req.Interaction.Notes)
	if err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		UserID:          userID,
		ContactID:       contact.ID,
		InteractionDate: req.Interaction.InteractionDate,
		Notes:           req.Interaction.Notes,
		Location:        req.Interaction.Location,
	}
	if err = s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}

	// The latest interaction always wins, even for an existing contact.
	if err = s.contactRepo.UpdateLatestNews(ctx, userID, contact.ID, req.Interaction.Notes); err != nil {
		return nil, err
	}

	familyLinked, err := s.linkFamilyMembers(ctx, userID, contact.ID, contact.FirstName, req.FamilyMembers)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Interaction confirmed",
		zap.String("contact_id", contact.ID.String()),
		zap.Bool("contact_created", contactCreated),
		zap.String("interaction_id", interaction.ID.String()),
		zap.Int("family_members_linked", familyLinked))

	return &models.ConfirmResult{
		ContactID:           contact.ID,
		InteractionID:       interaction.ID,
		FamilyMembersLinked: familyLinked,
	}, nil
}

// linkFamilyMembers creates contacts and bidirectional relationship edges for
// every family mention with a first name. A member counts as linked when
// either direction inserted a new edge.
func (s *interactionService) linkFamilyMembers(ctx context.Context, userID, contactID uuid.UUID, contactFirstName string, members []models.ExtractedFamilyMember) (int, error) {
	linked := 0
	for _, member := range members {
		if member.FirstName == nil || *member.FirstName == "" {
			continue
		}

		lastName := ""
		if member.LastName != nil {
			lastName = *member.LastName
		}

		news := fmt.Sprintf("Family member of %s", contactFirstName)
		familyContact, _, err := s.contactRepo.FindOrCreate(ctx, userID, *member.FirstName, lastName, nil, &news)
		if err != nil {
			return 0, err
		}

		relationship := models.ParseRelationship(member.Relationship)

		forward := &models.FamilyMember{
			ContactID:       contactID,
			FamilyContactID: familyContact.ID,
			Relationship:    relationship,
		}
		forwardCreated, err := s.familyRepo.CreateIgnoreDuplicate(ctx, forward)
		if err != nil {
			return 0, err
		}

		reverse := &models.FamilyMember{
			ContactID:       familyContact.ID,
			FamilyContactID: contactID,
			Relationship:    relationship.Inverse(),
		}
		reverseCreated, err := s.familyRepo.CreateIgnoreDuplicate(ctx, reverse)
		if err != nil {
			return 0, err
		}

		if forwardCreated || reverseCreated {
			linked++
			s.logger.Debug("Family member linked",
				zap.String("contact_id", contactID.String()),
				zap.String("family_contact_id", familyContact.ID.String()),
				zap.String("relationship", relationship.String()),
				zap.String("inverse", relationship.Inverse().String()))
		}
	}

	return linked, nil
}

// Get retrieves an interaction.
func (s *interactionService) Get(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error) {
	return s.interactionRepo.GetByID(ctx, userID, interactionID)
}

// Update applies a partial update to an interaction.
func (s *interactionService) Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error) {
	return s.interactionRepo.Update(ctx, userID, interactionID, update)
}

// Delete removes an interaction.
func (s *interactionService) Delete(ctx context.Context, userID, interactionID uuid.UUID) error {
	return s.interactionRepo.Delete(ctx, userID, interactionID)
}

// Ensure interactionService implements InteractionService at compile time.
var _ InteractionService = (*interactionService)(nil)
