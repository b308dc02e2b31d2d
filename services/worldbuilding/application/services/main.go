// Package services orchestrates the worldbuilding domain: each operation
// validates through a domain validator, mutates an aggregate, persists it via
// a fresh unit of work, and publishes the aggregate's recorded events only
// after a successful commit.
package services

import (
	"context"

	"github.com/ghuser/inkwell/pkg/app"
	pkgcache "github.com/ghuser/inkwell/pkg/cache"
	domainevents "github.com/ghuser/inkwell/services/worldbuilding/domain/events"
	"github.com/ghuser/inkwell/services/worldbuilding/domain/repositories"
	domainsvcs "github.com/ghuser/inkwell/services/worldbuilding/domain/services"
	infraevents "github.com/ghuser/inkwell/services/worldbuilding/infrastructure/events"
	"github.com/ghuser/inkwell/services/worldbuilding/infrastructure/persistence/postgres"
)

// UnitOfWorkFactory creates a fresh unit of work. A unit of work is scoped to
// one logical operation; services must never share one across operations.
type UnitOfWorkFactory func() repositories.UnitOfWork

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Universes  *UniverseService
	Stories    *StoryService
	Chapters   *ChapterService
	Characters *CharacterService
}

// New wires all worldbuilding application services with infrastructure from
// the Application container.
func New(a *app.Application) *Services {
	universes := postgres.NewUniverseRepository(a.Db)
	stories := postgres.NewStoryRepository(a.Db)
	chapters := postgres.NewChapterRepository(a.Db)
	characters := postgres.NewCharacterRepository(a.Db)

	uowFactory := func() repositories.UnitOfWork { return postgres.NewUnitOfWork(a.Db) }
	publisher := infraevents.NewPublisher(a.EventBus)

	var universeCache *pkgcache.UniverseCache
	if a.Redis != nil {
		universeCache = pkgcache.NewUniverseCache(a.Redis)
	}

	return &Services{
		Universes: NewUniverseService(
			uowFactory,
			domainsvcs.NewUniverseValidator(universes, stories, characters),
			publisher,
			universes,
			universeCache,
		),
		Stories: NewStoryService(
			uowFactory,
			domainsvcs.NewStoryValidator(stories, chapters),
			domainsvcs.NewChapterValidator(chapters),
			publisher,
			stories,
		),
		Chapters: NewChapterService(
			uowFactory,
			domainsvcs.NewChapterValidator(chapters),
			publisher,
			stories,
			chapters,
			characters,
		),
		Characters: NewCharacterService(
			uowFactory,
			domainsvcs.NewCharacterValidator(characters),
			publisher,
			characters,
		),
	}
}

// eventSource is the slice of an aggregate the publishing flow needs.
type eventSource interface {
	DomainEvents() []domainevents.DomainEvent
	ClearDomainEvents()
}

// publishAndClear dispatches an aggregate's recorded events in append order
// and then empties the aggregate's log. Call only after a successful commit.
func publishAndClear(ctx context.Context, pub domainevents.Publisher, src eventSource) error {
	if err := pub.Publish(ctx, src.DomainEvents()...); err != nil {
		return err
	}
	src.ClearDomainEvents()
	return nil
}
