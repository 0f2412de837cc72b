package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/repositories"
)

// recentInteractionsLimit is how many interactions a contact summary carries.
const recentInteractionsLimit = 5

// ContactService defines the interface for contact operations.
type ContactService interface {
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.ContactList, error)
	Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error)
	// GetSummary aggregates a contact with interaction statistics, recent
	// interactions, family links, and the last interaction date.
	GetSummary(ctx context.Context, userID, contactID uuid.UUID) (*models.ContactSummary, error)
	Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error)
	Delete(ctx context.Context, userID, contactID uuid.UUID) error
	// GetInteractions lists a contact's interactions, newest first. The
	// contact must exist; a missing contact is ErrNotFound.
	GetInteractions(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error)
}

// contactService implements ContactService.
type contactService struct {
	contactRepo     repositories.ContactRepository
	interactionRepo repositories.InteractionRepository
	familyRepo      repositories.FamilyMemberRepository
	logger          *zap.Logger
}

// NewContactService creates a new contact service with dependencies.
func NewContactService(
	contactRepo repositories.ContactRepository,
	interactionRepo repositories.InteractionRepository,
	familyRepo repositories.FamilyMemberRepository,
	logger *zap.Logger,
) ContactService {
	return &contactService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		familyRepo:      familyRepo,
		logger:          logger.Named("contacts"),
	}
}

// List returns one page of contacts with totals.
func (s *contactService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) (*models.ContactList, error) {
	total, err := s.contactRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	contacts, err := s.contactRepo.List(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &models.ContactList{
		Contacts:   contacts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get retrieves a contact.
func (s *contactService) Get(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	return s.contactRepo.GetByID(ctx, userID, contactID)
}

// GetSummary assembles the full contact view.
func (s *contactService) GetSummary(ctx context.Context, userID, contactID uuid.UUID) (*models.ContactSummary, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	total, err := s.interactionRepo.CountByContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	recent, err := s.interactionRepo.ListByContact(ctx, userID, contactID, recentInteractionsLimit, 0)
	if err != nil {
		return nil, err
	}

	family, err := s.familyRepo.ListWithDetails(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	lastDate, err := s.interactionRepo.LastInteractionDate(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	return &models.ContactSummary{
		Contact:             contact,
		TotalInteractions:   total,
		RecentInteractions:  recent,
		FamilyMembers:       family,
		LastInteractionDate: lastDate,
	}, nil
}

// Update applies a partial update to a contact.
func (s *contactService) Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error) {
	return s.contactRepo.Update(ctx, userID, contactID, update)
}

// Delete removes a contact and, by cascade, its interactions and family
// edges.
func (s *contactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	return s.contactRepo.Delete(ctx, userID, contactID)
}

// GetInteractions lists a contact's interactions after verifying the contact
// exists for this owner.
func (s *contactService) GetInteractions(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	if _, err := s.contactRepo.GetByID(ctx, userID, contactID); err != nil {
		return nil, err
	}
	return s.interactionRepo.ListByContact(ctx, userID, contactID, limit, offset)
}

// Ensure contactService implements ContactService at compile time.
var _ ContactService = (*contactService)(nil)
