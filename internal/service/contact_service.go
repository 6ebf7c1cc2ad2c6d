package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"contactly-be/internal/cache"
	"contactly-be/internal/entities"
	"contactly-be/internal/logger"
	"contactly-be/internal/models"
	"contactly-be/internal/repository"
	"contactly-be/internal/validation"
)

// ContactService defines the interface for contact business logic.
// Every operation is scoped to ownerID.
type ContactService interface {
	Create(ctx context.Context, ownerID string, req *models.CreateContactRequest) (*entities.Contact, error)
	List(ctx context.Context, ownerID string, opts ListOptions) (*models.ContactListResponse, error)
	Get(ctx context.Context, ownerID, id string) (*entities.Contact, error)
	Update(ctx context.Context, ownerID string, req *models.UpdateContactRequest) (*entities.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	ToggleFavorite(ctx context.Context, ownerID, id string) ([]*entities.Contact, error)
}

type contactService struct {
	repo      repository.ContactRepository
	cache     cache.ContactCache
	validator *validation.Validator
	log       *logger.Logger
}

// NewContactService creates a new contact service. cacheClient may be nil.
func NewContactService(repo repository.ContactRepository, cacheClient cache.ContactCache, v *validation.Validator, log *logger.Logger) ContactService {
	svc := &contactService{
		repo:      repo,
		validator: v,
		log:       log,
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrContactNotFound
	}
	return err
}

// Create validates and stores a new contact owned by ownerID
func (s *contactService) Create(ctx context.Context, ownerID string, req *models.CreateContactRequest) (*entities.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	contact := &entities.Contact{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address.ToEntity(),
		Notes:    req.Notes,
		Birthday: req.Birthday.Ptr(),
		Tags:     req.Tags,
		Favorite: req.Favorite,
		PostedBy: ownerID,
	}

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return created, nil
}

// List returns the caller's contacts shaped by opts
func (s *contactService) List(ctx context.Context, ownerID string, opts ListOptions) (*models.ContactListResponse, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	contacts, err := s.listAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return shapeContacts(contacts, opts), nil
}

// Get returns one contact of the caller
func (s *contactService) Get(ctx context.Context, ownerID, id string) (*entities.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	contact, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, notFound(err)
	}
	return contact, nil
}

// Update applies the non-nil fields of req to a contact of the caller
func (s *contactService) Update(ctx context.Context, ownerID string, req *models.UpdateContactRequest) (*entities.Contact, error) {
	if err := checkID(req.ID); err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	contact, err := s.repo.FindByIDAndOwner(ctx, req.ID, ownerID)
	if err != nil {
		return nil, notFound(err)
	}

	applyUpdate(contact, req)

	updated, err := s.repo.Update(ctx, contact)
	if err != nil {
		return nil, notFound(err)
	}

	s.invalidate(ctx, ownerID)
	return updated, nil
}

func applyUpdate(c *entities.Contact, req *models.UpdateContactRequest) {
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = req.Address.ToEntity()
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Birthday != nil {
		c.Birthday = req.Birthday.Ptr()
	}
	if req.Tags != nil {
		c.Tags = req.Tags
	}
	if req.Favorite != nil {
		c.Favorite = *req.Favorite
	}
}

// Delete removes a contact of the caller
func (s *contactService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return notFound(err)
	}

	s.invalidate(ctx, ownerID)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the caller's refreshed list
func (s *contactService) ToggleFavorite(ctx context.Context, ownerID, id string) ([]*entities.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	if _, err := s.repo.ToggleFavorite(ctx, id, ownerID); err != nil {
		return nil, notFound(err)
	}

	s.invalidate(ctx, ownerID)
	return s.listAll(ctx, ownerID)
}

// listAll reads through the cache. Cache failures fall back to the database.
// The version is read before the database, so a list stored after a
// concurrent write lands under a version that write already retired.
func (s *contactService) listAll(ctx context.Context, ownerID string) ([]*entities.Contact, error) {
	var version int64
	cached := s.cache != nil
	if cached {
		var err error
		if version, err = s.cache.Version(ctx, ownerID); err != nil {
			s.log.Warn("contact cache read failed", "owner", ownerID, "error", err)
			cached = false
		}
	}

	if cached {
		contacts, err := s.cache.GetContacts(ctx, ownerID, version)
		if err == nil {
			return contacts, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("contact cache read failed", "owner", ownerID, "error", err)
		}
	}

	contacts, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if cached {
		if err := s.cache.SetContacts(ctx, ownerID, version, contacts); err != nil {
			s.log.Warn("contact cache write failed", "owner", ownerID, "error", err)
		}
	}
	return contacts, nil
}

func (s *contactService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.log.Warn("contact cache invalidation failed", "owner", ownerID, "error", err)
	}
}
