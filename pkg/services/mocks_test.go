package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/SergeNasr/memoro/pkg/models"
	"github.com/SergeNasr/memoro/pkg/repositories"
)

// Hand-rolled repository mocks with function fields. Unset functions panic,
// which keeps tests honest about what they exercise.

type mockContactRepo struct {
	FindOrCreateFunc     func(ctx context.Context, userID uuid.UUID, firstName, lastName string, birthday *models.Date, latestNews *string) (*models.Contact, bool, error)
	GetByIDFunc          func(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error)
	ListFunc             func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Contact, error)
	CountFunc            func(ctx context.Context, userID uuid.UUID) (int, error)
	UpdateFunc           func(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error)
	DeleteFunc           func(ctx context.Context, userID, contactID uuid.UUID) error
	UpdateLatestNewsFunc func(ctx context.Context, userID, contactID uuid.UUID, news string) error
	SearchTermFunc       func(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
	SearchFuzzyFunc      func(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
}

func (m *mockContactRepo) FindOrCreate(ctx context.Context, userID uuid.UUID, firstName, lastName string, birthday *models.Date, latestNews *string) (*models.Contact, bool, error) {
	return m.FindOrCreateFunc(ctx, userID, firstName, lastName, birthday, latestNews)
}

func (m *mockContactRepo) GetByID(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	return m.GetByIDFunc(ctx, userID, contactID)
}

func (m *mockContactRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Contact, error) {
	return m.ListFunc(ctx, userID, limit, offset)
}

func (m *mockContactRepo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return m.CountFunc(ctx, userID)
}

func (m *mockContactRepo) Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error) {
	return m.UpdateFunc(ctx, userID, contactID, update)
}

func (m *mockContactRepo) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, contactID)
}

func (m *mockContactRepo) UpdateLatestNews(ctx context.Context, userID, contactID uuid.UUID, news string) error {
	return m.UpdateLatestNewsFunc(ctx, userID, contactID, news)
}

func (m *mockContactRepo) SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	return m.SearchTermFunc(ctx, userID, query, limit)
}

func (m *mockContactRepo) SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	return m.SearchFuzzyFunc(ctx, userID, query, limit)
}

type mockInteractionRepo struct {
	CreateFunc              func(ctx context.Context, interaction *models.Interaction) error
	GetByIDFunc             func(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error)
	UpdateFunc              func(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error)
	DeleteFunc              func(ctx context.Context, userID, interactionID uuid.UUID) error
	ListByContactFunc       func(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error)
	CountByContactFunc      func(ctx context.Context, userID, contactID uuid.UUID) (int, error)
	LastInteractionDateFunc func(ctx context.Context, userID, contactID uuid.UUID) (*models.Date, error)
	SearchTermFunc          func(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
	SearchFuzzyFunc         func(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
}

func (m *mockInteractionRepo) Create(ctx context.Context, interaction *models.Interaction) error {
	return m.CreateFunc(ctx, interaction)
}

func (m *mockInteractionRepo) GetByID(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error) {
	return m.GetByIDFunc(ctx, userID, interactionID)
}

func (m *mockInteractionRepo) Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error) {
	return m.UpdateFunc(ctx, userID, interactionID, update)
}

func (m *mockInteractionRepo) Delete(ctx context.Context, userID, interactionID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, interactionID)
}

func (m *mockInteractionRepo) ListByContact(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	return m.ListByContactFunc(ctx, userID, contactID, limit, offset)
}

func (m *mockInteractionRepo) CountByContact(ctx context.Context, userID, contactID uuid.UUID) (int, error) {
	return m.CountByContactFunc(ctx, userID, contactID)
}

func (m *mockInteractionRepo) LastInteractionDate(ctx context.Context, userID, contactID uuid.UUID) (*models.Date, error) {
	return m.LastInteractionDateFunc(ctx, userID, contactID)
}

func (m *mockInteractionRepo) SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	return m.SearchTermFunc(ctx, userID, query, limit)
}

func (m *mockInteractionRepo) SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	return m.SearchFuzzyFunc(ctx, userID, query, limit)
}

type mockFamilyRepo struct {
	CreateIgnoreDuplicateFunc func(ctx context.Context, edge *models.FamilyMember) (bool, error)
	ListWithDetailsFunc       func(ctx context.Context, userID, contactID uuid.UUID) ([]*models.FamilyMemberWithDetails, error)
}

func (m *mockFamilyRepo) CreateIgnoreDuplicate(ctx context.Context, edge *models.FamilyMember) (bool, error) {
	return m.CreateIgnoreDuplicateFunc(ctx, edge)
}

func (m *mockFamilyRepo) ListWithDetails(ctx context.Context, userID, contactID uuid.UUID) ([]*models.FamilyMemberWithDetails, error) {
	return m.ListWithDetailsFunc(ctx, userID, contactID)
}

var (
	_ repositories.ContactRepository      = (*mockContactRepo)(nil)
	_ repositories.InteractionRepository  = (*mockInteractionRepo)(nil)
	_ repositories.FamilyMemberRepository = (*mockFamilyRepo)(nil)
)

func strPtr(s string) *string { return &s }
