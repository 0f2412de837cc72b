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

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	// FindOrCreate atomically finds a contact by exact name match or creates
	// it. latestNews seeds a brand-new contact only; existing news is kept.
	// Returns the contact and whether a new row was inserted.
	FindOrCreate(ctx context.Context, userID uuid.UUID, firstName, lastName string, birthday *models.Date, latestNews *string) (*models.Contact, bool, error)
	GetByID(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Contact, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error)
	Delete(ctx context.Context, userID, contactID uuid.UUID) error
	UpdateLatestNews(ctx context.Context, userID, contactID uuid.UUID, news string) error
	SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
	SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error)
}

// contactRepository implements ContactRepository using PostgreSQL.
type contactRepository struct{}

// NewContactRepository creates a new contact repository.
func NewContactRepository() ContactRepository {
	return &contactRepository{}
}

const contactColumns = `id, user_id, first_name, last_name, birthday, latest_news, created_at, updated_at`

func scanContact(row pgx.Row) (*models.Contact, error) {
	var contact models.Contact
	var birthday *time.Time
	err := row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.FirstName,
		&contact.LastName,
		&birthday,
		&contact.LatestNews,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	contact.Birthday = models.DatePtr(birthday)
	return &contact, nil
}

// FindOrCreate upserts on the (user_id, first_name, last_name) identity.
// The DO UPDATE makes the statement always return the row; xmax = 0
// distinguishes a fresh insert from an existing row. On an existing contact,
// birthday and latest_news are only backfilled when they were null.
func (r *contactRepository) FindOrCreate(ctx context.Context, userID uuid.UUID, firstName, lastName string, birthday *models.Date, latestNews *string) (*models.Contact, bool, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, false, fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO contact (user_id, first_name, last_name, birthday, latest_news)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, first_name, last_name) DO UPDATE
		SET birthday = COALESCE(contact.birthday, EXCLUDED.birthday),
		    latest_news = COALESCE(contact.latest_news, EXCLUDED.latest_news),
		    updated_at = now()
		RETURNING ` + contactColumns + `, (xmax = 0) AS created`

	var birthdayArg *time.Time
	if birthday != nil {
		t := birthday.Time
		birthdayArg = &t
	}

	var contact models.Contact
	var birthdayCol *time.Time
	var created bool
	err := scope.Conn.QueryRow(ctx, query, userID, firstName, lastName, birthdayArg, latestNews).Scan(
		&contact.ID,
		&contact.UserID,
		&contact.FirstName,
		&contact.LastName,
		&birthdayCol,
		&contact.LatestNews,
		&contact.CreatedAt,
		&contact.UpdatedAt,
		&created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find or create contact: %w", err)
	}
	contact.Birthday = models.DatePtr(birthdayCol)

	return &contact, created, nil
}

// GetByID retrieves a contact owned by the given user.
func (r *contactRepository) GetByID(ctx context.Context, userID, contactID uuid.UUID) (*models.Contact, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `SELECT ` + contactColumns + ` FROM contact WHERE user_id = $1 AND id = $2`

	contact, err := scanContact(scope.Conn.QueryRow(ctx, query, userID, contactID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

// List retrieves a page of contacts ordered by name.
func (r *contactRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Contact, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contact
		WHERE user_id = $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3`

	rows, err := scope.Conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// Count returns the total number of contacts for a user.
func (r *contactRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no database scope in context")
	}

	var count int
	err := scope.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM contact WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	return count, nil
}

// Update applies the non-nil fields of the update and returns the new row.
// Nil fields are left unchanged.
func (r *contactRepository) Update(ctx context.Context, userID, contactID uuid.UUID, update *models.ContactUpdate) (*models.Contact, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE contact
		SET first_name = COALESCE($1, first_name),
		    last_name = COALESCE($2, last_name),
		    birthday = COALESCE($3, birthday),
		    latest_news = COALESCE($4, latest_news),
		    updated_at = now()
		WHERE user_id = $5 AND id = $6
		RETURNING ` + contactColumns

	var birthdayArg *time.Time
	if update.Birthday != nil {
		t := update.Birthday.Time
		birthdayArg = &t
	}

	contact, err := scanContact(scope.Conn.QueryRow(ctx, query,
		update.FirstName,
		update.LastName,
		birthdayArg,
		update.LatestNews,
		userID,
		contactID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

// Delete removes a contact. Interactions and family edges cascade.
func (r *contactRepository) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM contact WHERE user_id = $1 AND id = $2`, userID, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// UpdateLatestNews overwrites latest_news unconditionally (last write wins).
func (r *contactRepository) UpdateLatestNews(ctx context.Context, userID, contactID uuid.UUID, news string) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `UPDATE contact SET latest_news = $1, updated_at = now() WHERE user_id = $2 AND id = $3`

	result, err := scope.Conn.Exec(ctx, query, news, userID, contactID)
	if err != nil {
		return fmt.Errorf("failed to update latest news: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// SearchTerm finds contacts by case-insensitive substring match on names and
// latest news. Every hit scores 1.0.
func (r *contactRepository) SearchTerm(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	sql := `
		SELECT id, first_name, last_name, birthday, latest_news
		FROM contact
		WHERE user_id = $1
		  AND (first_name ILIKE '%' || $2 || '%'
		    OR last_name ILIKE '%' || $2 || '%'
		    OR latest_news ILIKE '%' || $2 || '%')
		ORDER BY last_name, first_name
		LIMIT $3`

	rows, err := scope.Conn.Query(ctx, sql, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	defer rows.Close()

	return scanContactResults(rows, func(*models.ContactResult) float64 { return 1.0 })
}

// SearchFuzzy finds contacts by trigram similarity on names and latest news,
// scored by the greatest similarity across those fields.
func (r *contactRepository) SearchFuzzy(ctx context.Context, userID uuid.UUID, query string, limit int) ([]models.SearchResult, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	sql := `
		SELECT id, first_name, last_name, birthday, latest_news,
		       GREATEST(similarity(first_name, $2),
		                similarity(last_name, $2),
		                similarity(COALESCE(latest_news, ''), $2)) AS score
		FROM contact
		WHERE user_id = $1
		  AND (first_name % $2 OR last_name % $2 OR latest_news % $2)
		ORDER BY score DESC
		LIMIT $3`

	rows, err := scope.Conn.Query(ctx, sql, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fuzzy search contacts: %w", err)
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var c models.ContactResult
		var birthday *time.Time
		var score float64
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &birthday, &c.LatestNews, &score); err != nil {
			return nil, fmt.Errorf("failed to scan contact result: %w", err)
		}
		c.Birthday = models.DatePtr(birthday)
		results = append(results, models.NewContactSearchResult(&c, score))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact results: %w", err)
	}

	return results, nil
}

func scanContactResults(rows pgx.Rows, score func(*models.ContactResult) float64) ([]models.SearchResult, error) {
	var results []models.SearchResult
	for rows.Next() {
		var c models.ContactResult
		var birthday *time.Time
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &birthday, &c.LatestNews); err != nil {
			return nil, fmt.Errorf("failed to scan contact result: %w", err)
		}
		c.Birthday = models.DatePtr(birthday)
		results = append(results, models.NewContactSearchResult(&c, score(&c)))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact results: %w", err)
	}

	return results, nil
}

// Ensure contactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*contactRepository)(nil)
