package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"contactly-be/internal/entities"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks contactly-be/internal/repository UserRepository,ContactRepository

// ContactRepository defines the interface for contact database operations.
// Every lookup and mutation is scoped to the owning user.
type ContactRepository interface {
	Create(ctx context.Context, contact *entities.Contact) (*entities.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Contact, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entities.Contact, error)
	Update(ctx context.Context, contact *entities.Contact) (*entities.Contact, error)
	Delete(ctx context.Context, id, ownerID string) error
	ToggleFavorite(ctx context.Context, id, ownerID string) (*entities.Contact, error)
}

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, name, phone, email,
	address_street, address_city, address_state, address_postal_code,
	notes, birthday, tags, favorite, posted_by, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*entities.Contact, error) {
	var (
		c                                  entities.Contact
		street, city, state, postal, notes sql.NullString
		birthday                           sql.NullTime
		tags                               pq.StringArray
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&street,
		&city,
		&state,
		&postal,
		&notes,
		&birthday,
		&tags,
		&c.Favorite,
		&c.PostedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	addr := entities.Address{
		Street:     street.String,
		City:       city.String,
		State:      state.String,
		PostalCode: postal.String,
	}
	if !addr.IsZero() {
		c.Address = &addr
	}
	c.Notes = notes.String
	if birthday.Valid {
		y, m, d := birthday.Time.Date()
		b := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		c.Birthday = &b
	}
	c.Tags = []string(tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c, nil
}

// contactArgs returns the writable columns in the order used by Create and Update.
func contactArgs(c *entities.Contact) []any {
	var addr entities.Address
	if c.Address != nil {
		addr = *c.Address
	}
	var birthday sql.NullTime
	if c.Birthday != nil {
		birthday = sql.NullTime{Time: *c.Birthday, Valid: true}
	}
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return []any{
		c.Name,
		c.Phone,
		c.Email,
		nullString(addr.Street),
		nullString(addr.City),
		nullString(addr.State),
		nullString(addr.PostalCode),
		nullString(c.Notes),
		birthday,
		pq.Array(tags),
		c.Favorite,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create inserts a new contact for contact.PostedBy
func (r *contactRepository) Create(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	query := `
		INSERT INTO contacts (name, phone, email,
			address_street, address_city, address_state, address_postal_code,
			notes, birthday, tags, favorite, posted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + contactColumns

	args := append(contactArgs(contact), contact.PostedBy)
	created, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return created, nil
}

// ListByOwner retrieves all contacts of a user, newest first
func (r *contactRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Contact, error) {
	contacts := []*entities.Contact{}
	if !validID(ownerID) {
		return contacts, nil
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE posted_by = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// FindByIDAndOwner finds a contact only if it belongs to ownerID
func (r *contactRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entities.Contact, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, ErrNotFound
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1 AND posted_by = $2
	`

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return contact, nil
}

// Update overwrites every writable column of a contact owned by contact.PostedBy
func (r *contactRepository) Update(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	if !validID(contact.ID) || !validID(contact.PostedBy) {
		return nil, ErrNotFound
	}

	query := `
		UPDATE contacts
		SET name = $1, phone = $2, email = $3,
			address_street = $4, address_city = $5, address_state = $6, address_postal_code = $7,
			notes = $8, birthday = $9, tags = $10, favorite = $11,
			updated_at = NOW()
		WHERE id = $12 AND posted_by = $13
		RETURNING ` + contactColumns

	args := append(contactArgs(contact), contact.ID, contact.PostedBy)
	updated, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return updated, nil
}

// Delete removes a contact owned by ownerID
func (r *contactRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) || !validID(ownerID) {
		return ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND posted_by = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ToggleFavorite flips the favorite flag of a contact owned by ownerID
func (r *contactRepository) ToggleFavorite(ctx context.Context, id, ownerID string) (*entities.Contact, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, ErrNotFound
	}

	query := `
		UPDATE contacts
		SET favorite = NOT favorite, updated_at = NOW()
		WHERE id = $1 AND posted_by = $2
		RETURNING ` + contactColumns

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	return contact, nil
}
