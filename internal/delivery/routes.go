package delivery

import (
	"github.com/Vovarama1992/backstage/internal/models"
	"github.com/Vovarama1992/backstage/internal/ports"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Auth     *AuthHandler
	Books    *BookHandler
	Cds      *CdHandler
	Dvds     *DvdHandler
	Clips    *ClipHandler
	Lyrics   *LyricHandler
	Photos   *PhotoHandler
	Shows    *ShowHandler
	Texts    *TextHandler
	Messages *MessageHandler
	Uploads  *UploadHandler
	Admins   *AdminHandler
	Stats    *StatsHandler
}

func RegisterRoutes(r chi.Router, auth ports.AuthService, h Handlers) {

	// login is the only public endpoint, and the only throttled one
	r.With(RateLimiter()).Post("/api/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(auth))

		r.Get("/api/me", h.Auth.Me)
		r.Get("/api/stats", h.Stats.Get)

		r.Route("/api/books", func(r chi.Router) {
			r.Get("/", h.Books.List)
			r.Post("/", h.Books.Create)
			r.Get("/{id}", h.Books.Get)
			r.Put("/{id}", h.Books.Update)
			r.Delete("/{id}", h.Books.Delete)
			r.Patch("/{id}/publish", h.Books.TogglePublish)
		})

		r.Route("/api/cds", func(r chi.Router) {
			r.Get("/", h.Cds.List)
			r.Post("/", h.Cds.Create)
			r.Get("/{id}", h.Cds.Get)
			r.Put("/{id}", h.Cds.Update)
			r.Delete("/{id}", h.Cds.Delete)
			r.Patch("/{id}/publish", h.Cds.TogglePublish)
		})

		r.Route("/api/dvds", func(r chi.Router) {
			r.Get("/", h.Dvds.List)
			r.Post("/", h.Dvds.Create)
			r.Get("/{id}", h.Dvds.Get)
			r.Put("/{id}", h.Dvds.Update)
			r.Delete("/{id}", h.Dvds.Delete)
			r.Patch("/{id}/publish", h.Dvds.TogglePublish)
		})

		r.Route("/api/clips", func(r chi.Router) {
			r.Get("/", h.Clips.List)
			r.Post("/", h.Clips.Create)
			r.Get("/{id}", h.Clips.Get)
			r.Put("/{id}", h.Clips.Update)
			r.Delete("/{id}", h.Clips.Delete)
			r.Patch("/{id}/publish", h.Clips.TogglePublish)
		})

		r.Route("/api/lyrics", func(r chi.Router) {
			r.Get("/", h.Lyrics.List)
			r.Post("/", h.Lyrics.Create)
			r.Get("/{id}", h.Lyrics.Get)
			r.Put("/{id}", h.Lyrics.Update)
			r.Delete("/{id}", h.Lyrics.Delete)
			r.Patch("/{id}/publish", h.Lyrics.TogglePublish)
		})

		r.Route("/api/photos", func(r chi.Router) {
			r.Get("/", h.Photos.List)
			r.Post("/", h.Photos.Create)
			r.Get("/{id}", h.Photos.Get)
			r.Put("/{id}", h.Photos.Update)
			r.Delete("/{id}", h.Photos.Delete)
			r.Patch("/{id}/publish", h.Photos.TogglePublish)
		})

		r.Route("/api/shows", func(r chi.Router) {
			r.Get("/", h.Shows.List)
			r.Post("/", h.Shows.Create)
			r.Get("/{id}", h.Shows.Get)
			r.Put("/{id}", h.Shows.Update)
			r.Delete("/{id}", h.Shows.Delete)
			r.Patch("/{id}/publish", h.Shows.TogglePublish)
		})

		r.Route("/api/texts", func(r chi.Router) {
			r.Get("/", h.Texts.List)
			r.Post("/", h.Texts.Create)
			r.Get("/{id}", h.Texts.Get)
			r.Put("/{id}", h.Texts.Update)
			r.Delete("/{id}", h.Texts.Delete)
			r.Patch("/{id}/publish", h.Texts.TogglePublish)
		})

		r.Route("/api/messages", func(r chi.Router) {
			r.Get("/", h.Messages.List)
			r.Post("/", h.Messages.Create)
			r.Get("/{id}", h.Messages.Get)
			r.Delete("/{id}", h.Messages.Delete)
			r.Patch("/{id}/read", h.Messages.ToggleRead)
		})

		r.Route("/api/upload", func(r chi.Router) {
			r.Get("/", h.Uploads.List)
			r.Post("/", h.Uploads.Upload)
			r.Get("/{id}", h.Uploads.Get)
			r.Delete("/{id}", h.Uploads.Delete)
		})

		r.Route("/api/admins", func(r chi.Router) {
			r.Use(RequireRole(models.RoleSuperadmin))
			r.Get("/", h.Admins.List)
			r.Post("/", h.Admins.Create)
			r.Put("/{id}", h.Admins.Update)
			r.Delete("/{id}", h.Admins.Delete)
		})
	})
}
