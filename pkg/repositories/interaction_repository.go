package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SergeNasr/memoro/pkg/apperrors"
	"github.com/SergeNasr/memoro/pkg/database"
	"github.com/SergeNasr/memoro/pkg/models"
)

// InteractionRepository defines the interface for interaction data access.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	GetByID(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error)
	Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error)
	Delete(ctx context.Context, userID, interactionID uuid.UUID) error
	ListByContact(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error)
	CountByContact(ctx context.Context, userID, contactID uuid.UUID) (int, error)
	// LastInteractionDate returns the most recent interaction date for a
	// contact, or nil if the contact has no interactions.
	LastInteractionDate(ctx context.Context, userID, contactID uuid.UUID) (*models.Date, error)
	SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
	SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
}

// interactionRepository implements InteractionRepository using PostgreSQL.
type interactionRepository struct{}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository() InteractionRepository {
	return &interactionRepository{}
}

const interactionColumns = `id, user_id, contact_id, interaction_date, notes, location, created_at, updated_at`

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	var interaction models.Interaction
	var date time.Time
	err := row.Scan(
		&interaction.ID,
		&interaction.UserID,
		&interaction.ContactID,
		&date,
		&interaction.Notes,
		&interaction.Location,
		&interaction.CreatedAt,
		&interaction.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	interaction.InteractionDate = models.NewDate(date)
	return &interaction, nil
}

// Create inserts an interaction and fills the generated id and timestamps.
func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO interaction (user_id, contact_id, interaction_date, notes, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		interaction.UserID,
		interaction.ContactID,
		interaction.InteractionDate.Time,
		interaction.Notes,
		interaction.Location,
	).Scan(&interaction.ID, &interaction.CreatedAt, &interaction.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// GetByID retrieves an interaction owned by the given user.
func (r *interactionRepository) GetByID(ctx context.Context, userID, interactionID uuid.UUID) (*models.Interaction, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `SELECT ` + interactionColumns + ` FROM interaction WHERE user_id = $1 AND id = $2`

	interaction, err := scanInteraction(scope.Conn.QueryRow(ctx, query, userID, interactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}

	return interaction, nil
}

// Update applies the non-nil fields of the update. The contact linkage is
// immutable and cannot be changed here.
func (r *interactionRepository) Update(ctx context.Context, userID, interactionID uuid.UUID, update *models.InteractionUpdate) (*models.Interaction, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE interaction
		SET interaction_date = COALESCE($1, interaction_date),
		    notes = COALESCE($2, notes),
		    location = COALESCE($3, location),
		    updated_at = now()
		WHERE user_id = $4 AND id = $5
		RETURNING ` + interactionColumns

	var dateArg *time.Time
	if update.InteractionDate != nil {
		t := update.InteractionDate.Time
		dateArg = &t
	}

	interaction, err := scanInteraction(scope.Conn.QueryRow(ctx, query,
		dateArg,
		update.Notes,
		update.Location,
		userID,
		interactionID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update interaction: %w", err)
	}

	return interaction, nil
}

// Delete removes an interaction.
func (r *interactionRepository) Delete(ctx context.Context, userID, interactionID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM interaction WHERE user_id = $1 AND id = $2`, userID, interactionID)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ListByContact retrieves a page of a contact's interactions, newest first.
func (r *interactionRepository) ListByContact(ctx context.Context, userID, contactID uuid.UUID, limit, offset int) ([]*models.Interaction, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT ` + interactionColumns + `
		FROM interaction
		WHERE user_id = $1 AND contact_id = $2
		ORDER BY interaction_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := scope.Conn.Query(ctx, query, userID, contactID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*models.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}

	return interactions, nil
}

// CountByContact returns the total number of interactions with a contact.
func (r *interactionRepository) CountByContact(ctx context.Context, userID, contactID uuid.UUID) (int, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no database scope in context")
	}

	var count int
	err := scope.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM interaction WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count interactions: %w", err)
	}

	return count, nil
}

// LastInteractionDate returns the most recent interaction date for a contact.
func (r *interactionRepository) LastInteractionDate(ctx context.Context, userID, contactID uuid.UUID) (*models.Date, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	var last *time.Time
	err := scope.Conn.QueryRow(ctx,
		`SELECT MAX(interaction_date) FROM interaction WHERE user_id = $1 AND contact_id = $2`,
		userID, contactID,
	).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("failed to get last interaction date: %w", err)
	}

	return models.DatePtr(last), nil
}

// SearchTerm finds interactions by case-insensitive substring match on
// notes, location, and the joined contact's name. Every hit scores 1.0.
func (r *interactionRepository) SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	sql := `
		SELECT i.id, i.contact_id, i.interaction_date, i.notes, i.location,
		       c.first_name, c.last_name
		FROM interaction i
		JOIN contact c ON c.id = i.contact_id
		WHERE i.user_id = $1
		  AND (i.notes ILIKE '%' || $2 || '%'
		    OR i.location ILIKE '%' || $2 || '%'
		    OR c.first_name ILIKE '%' || $2 || '%'
		    OR c.last_name ILIKE '%' || $2 || '%')
		ORDER BY i.interaction_date DESC
		LIMIT $3`

	rows, err := scope.Conn.Query(ctx, sql, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractionResults(rows, false)
}

// SearchFuzzy finds interactions by trigram similarity on notes, location,
// and the joined contact's name, scored by the greatest similarity across
// those fields.
func (r *interactionRepository) SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	sql := `
		SELECT i.id, i.contact_id, i.interaction_date, i.notes, i.location,
		       c.first_name, c.last_name,
		       GREATEST(similarity(i.notes, $2),
		                similarity(COALESCE(i.location, ''), $2),
		                similarity(c.first_name, $2),
		                similarity(c.last_name, $2)) AS score
		FROM interaction i
		JOIN contact c ON c.id = i.contact_id
		WHERE i.user_id = $1
		  AND (i.notes % $2
		    OR i.location % $2
		    OR c.first_name % $2
		    OR c.last_name % $2)
		ORDER BY score DESC
		LIMIT $3`

	rows, err := scope.Conn.Query(ctx, sql, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fuzzy search interactions: %w", err)
	}
	defer rows.Close()

	return scanInteractionResults(rows, true)
}

func scanInteractionResults(rows pgx.Rows, withScore bool) ([]models.SearchResult, error) {
	var results []models.SearchResult
	for rows.Next() {
		var res models.InteractionResult
		var date time.Time
		score := 1.0

		dest := []any{&res.ID, &res.ContactID, &date, &res.Notes, &res.Location, &res.ContactFirstName, &res.ContactLastName}
		if withScore {
			dest = append(dest, &score)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan interaction result: %w", err)
		}
		res.InteractionDate = models.NewDate(date)
		results = append(results, models.NewInteractionSearchResult(&res, score))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interaction results: %w", err)
	}

	return results, nil
}

// Ensure interactionRepository implements InteractionRepository at compile time.
var _ InteractionRepository = (*interactionRepository)(nil)
