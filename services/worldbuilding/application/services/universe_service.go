package services

import (
	"context"
	"fmt"

	pkgcache "github.com/ghuser/inkwell/pkg/cache"
	"github.com/ghuser/inkwell/services/worldbuilding/domain"
	domainevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/models"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	domainsvcs "github.com/ghuser/inkwell/services/worldbuilding/domain/services"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/specifications"
)

// UniverseService exposes the universe use cases. Expected rule failures are
// returned as ValidationResult data; sentinel errors cover not-found,
// conflict, and blocked-deletion outcomes.
type UniverseService struct {
	uow       UnitOfWorkFactory
	validator *domainsvcs.UniverseValidator
	publisher domainevents.Publisher
	universes repositories.UniverseRepository
	cache     *pkgcache.UniverseCache
}

// NewUniverseService wires the universe use cases.
func NewUniverseService(
	uow UnitOfWorkFactory,
	validator *domainsvcs.UniverseValidator,
	publisher domainevents.Publisher,
	universes repositories.UniverseRepository,
	cache *pkgcache.UniverseCache,
) *UniverseService {
	return &UniverseService{uow: uow, validator: validator, publisher: publisher, universes: universes, cache: cache}
}

// Create validates and persists a new universe, then publishes its recorded
// events. A non-valid ValidationResult carries the rule failures and leaves
// the store untouched.
func (s *UniverseService) Create(ctx context.Context, name, description string) (*models.Universe, domain.ValidationResult, error) {
	nameVO, err := models.NewEntityName(name)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	descVO, err := models.NewEntityDescription(description)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	result, err := s.validator.ValidateCreation(ctx, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	u := models.NewUniverse(nameVO, descVO)

	uow := s.uow()
	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Universes().Add(ctx, u); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	if err := publishAndClear(ctx, s.publisher, u); err != nil {
		return u, result, err
	}
	return u, result, nil
}

// GetByID loads one universe. Non-mutating callers hit the Redis read model
// first; a miss falls through to the repository and refills the cache.
func (s *UniverseService) GetByID(ctx context.Context, rawID int64) (*models.Universe, error) {
	id, err := models.NewUniverseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	// cache miss or cache trouble both fall through to the store
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id.Int64()); err == nil {
			return universeFromCache(cached), nil
		}
	}

	u, err := s.universes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.refreshCache(ctx, u)
	return u, nil
}

// GetWithContent loads one universe with its stories and characters for editing.
// Always reads through the repository; editors need tracked state, not a cache view.
func (s *UniverseService) GetWithContent(ctx context.Context, rawID int64) (*models.Universe, error) {
	id, err := models.NewUniverseID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.universes.FindOne(ctx, specifications.UniverseWithContent(id))
}

// List returns every universe ordered by name.
func (s *UniverseService) List(ctx context.Context) ([]*models.Universe, error) {
	return s.universes.Find(ctx, specifications.UniversesOrderedByName())
}

// Search lists universes whose names contain q, ordered by name. An empty q
// behaves like List.
func (s *UniverseService) Search(ctx context.Context, q string) ([]*models.Universe, error) {
	return s.universes.Find(ctx, specifications.UniverseNameSearch(q))
}

// Update validates and persists changed universe fields, then publishes the
// recorded update event and invalidates the cache entry.
func (s *UniverseService) Update(ctx context.Context, rawID int64, name, description string) (*models.Universe, domain.ValidationResult, error) {
	id, err := models.NewUniverseID(rawID)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	nameVO, err := models.NewEntityName(name)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	descVO, err := models.NewEntityDescription(description)
	if err != nil {
		return nil, domain.Valid(), fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	result, err := s.validator.ValidateUpdate(ctx, id, nameVO)
	if err != nil {
		return nil, result, err
	}
	if !result.IsValid() {
		return nil, result, nil
	}

	uow := s.uow()
	u, err := uow.Universes().GetByID(ctx, id)
	if err != nil {
		return nil, result, err
	}
	if err := u.Update(nameVO, descVO); err != nil {
		return nil, result, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, result, err
	}
	if err := uow.Universes().Update(ctx, u); err != nil {
		_ = uow.Rollback(ctx)
		return nil, result, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, result, err
	}

	s.invalidateCache(ctx, u.ID)
	if err := publishAndClear(ctx, s.publisher, u); err != nil {
		return u, result, err
	}
	return u, result, nil
}

// Delete removes an empty universe. A universe that still owns stories or
// characters fails with ErrDeleteBlocked.
func (s *UniverseService) Delete(ctx context.Context, rawID int64) error {
	id, err := models.NewUniverseID(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	uow := s.uow()
	u, err := uow.Universes().GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.validator.CanDelete(ctx, u)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: universe still owns stories or characters", domain.ErrDeleteBlocked)
	}

	if err := u.Delete(); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.Universes().Delete(ctx, u.ID); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	s.invalidateCache(ctx, u.ID)
	return publishAndClear(ctx, s.publisher, u)
}

// WarmCache refreshes the universe's cache entry from the store. Used by the
// worker's event handlers and safe to call concurrently.
func (s *UniverseService) WarmCache(ctx context.Context, rawID int64) error {
	id, err := models.NewUniverseID(rawID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	u, err := s.universes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, &pkgcache.CachedUniverse{
		ID:          u.ID.Int64(),
		Name:        u.Name.String(),
		Description: u.Description.String(),
		CreatedAt:   u.CreatedAt,
	})
}

// DropCache removes the universe's cache entry. Used by the worker when a
// universe is deleted.
func (s *UniverseService) DropCache(ctx context.Context, rawID int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, rawID)
}

func (s *UniverseService) refreshCache(ctx context.Context, u *models.Universe) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, &pkgcache.CachedUniverse{
		ID:          u.ID.Int64(),
		Name:        u.Name.String(),
		Description: u.Description.String(),
		CreatedAt:   u.CreatedAt,
	})
}

func (s *UniverseService) invalidateCache(ctx context.Context, id models.UniverseID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, id.Int64())
}

func universeFromCache(c *pkgcache.CachedUniverse) *models.Universe {
	return &models.Universe{
		ID:          models.UniverseID(c.ID),
		Name:        models.EntityName(c.Name),
		Description: models.EntityDescription(c.Description),
		CreatedAt:   c.CreatedAt,
	}
}
