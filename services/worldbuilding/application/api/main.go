package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/inkwell/pkg/app"
	"github.com/ghuser/inkwell/services/worldbuilding/application/handlers"
	appsvcs "github.com/ghuser/inkwell/services/worldbuilding/application/services"
)

// WorldbuildingRoutes registers the worldbuilding endpoints on the provided
// chi router.
func WorldbuildingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	universes := handlers.NewUniverseHandler(svcs)
	stories := handlers.NewStoryHandler(svcs)
	chapters := handlers.NewChapterHandler(svcs)
	characters := handlers.NewCharacterHandler(svcs)

	r.Group(func(r chi.Router) {
		r.Route("/universes", func(r chi.Router) {
			r.Get("/", universes.List)
			r.Post("/", universes.Create)
			r.Route("/{universeID}", func(r chi.Router) {
				r.Get("/", universes.Get)
				r.Get("/detail", universes.GetDetail)
				r.Put("/", universes.Update)
				r.Delete("/", universes.Delete)

				r.Get("/stories", stories.List)
				r.Post("/stories", stories.Create)
				r.Get("/characters", characters.List)
				r.Post("/characters", characters.Create)
			})
		})

		r.Route("/stories/{storyID}", func(r chi.Router) {
			r.Get("/", stories.Get)
			r.Put("/", stories.Update)
			r.Delete("/", stories.Delete)

			r.Get("/chapters", chapters.List)
			r.Post("/chapters", chapters.Create)
			r.Put("/chapters/order", stories.Reorder)
		})

		r.Route("/chapters/{chapterID}", func(r chi.Router) {
			r.Get("/", chapters.Get)
			r.Put("/", chapters.Update)
			r.Delete("/", chapters.Delete)

			r.Get("/characters", characters.Cast)
			r.Post("/characters", chapters.LinkCharacter)
			r.Delete("/characters/{characterID}", chapters.UnlinkCharacter)
		})

		r.Route("/characters/{characterID}", func(r chi.Router) {
			r.Get("/", characters.Get)
			r.Put("/", characters.Update)
			r.Delete("/", characters.Delete)
		})
	})
}
