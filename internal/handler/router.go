package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/johndoniego/erudite/internal/events"
	"github.com/johndoniego/erudite/internal/middleware"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/service"
	"github.com/johndoniego/erudite/internal/store"
)

// RouterConfig holds everything the HTTP surface is built from
type RouterConfig struct {
	Store          *store.Store
	Hub            *events.Hub
	DB             Pinger
	Communities    *service.CommunityService
	Posts          *service.PostService
	Saved          *service.SavedService
	Sessions       *service.SessionService
	Profiles       *service.ProfileService
	People         *service.PeopleService
	Reset          *service.ResetService
	Logger         *slog.Logger
	AllowedOrigins []string
	MaxImageBytes  int64
	Heartbeat      time.Duration
}

// NewRouter builds the chi router serving the API
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger(cfg.Logger),
		middleware.Recovery,
		middleware.CORS(cfg.AllowedOrigins),
		chimw.StripSlashes,
		middleware.Compress,
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, model.NewNotFoundError("route"))
	})

	admin := NewAdminHandler(cfg.Reset, cfg.DB)
	eventsH := NewEventsHandler(cfg.Hub, cfg.Heartbeat)
	collections := NewCollectionHandler(cfg.Store)
	communities := NewCommunityHandler(cfg.Communities)
	communityPosts := NewPostHandler(cfg.Posts, cfg.Saved, model.ScopeCommunity)
	skillPosts := NewPostHandler(cfg.Posts, cfg.Saved, model.ScopeSkill)
	saved := NewSavedHandler(cfg.Saved)
	sessions := NewSessionHandler(cfg.Sessions)
	profile := NewProfileHandler(cfg.Profiles, cfg.MaxImageBytes)
	people := NewPeopleHandler(cfg.People)

	r.Get("/health", admin.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", eventsH.Stream)
		r.Post("/reset", admin.Reset)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", collections.List)
			r.Get("/{key}", collections.Get)
			r.Put("/{key}", collections.Put)
			r.Delete("/{key}", collections.Delete)
		})

		r.Route("/communities", func(r chi.Router) {
			r.Get("/", communities.List)
			r.Post("/", communities.Create)
			r.Get("/joined", communities.Joined)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", communities.Get)
				r.Post("/join", communities.Join)
				r.Delete("/join", communities.Leave)
				mountPosts(r, communityPosts)
			})
		})

		r.Route("/skills/{id}", func(r chi.Router) {
			mountPosts(r, skillPosts)
		})

		r.Route("/saved", func(r chi.Router) {
			r.Get("/", saved.List)
			r.Delete("/{postID}", saved.Remove)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessions.List)
			r.Post("/", sessions.Schedule)
			r.Get("/upcoming", sessions.Upcoming)
			r.Get("/{id}", sessions.Get)
			r.Put("/{id}/status", sessions.UpdateStatus)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profile.Get)
			r.Put("/", profile.Update)
			r.Put("/avatar", profile.SetAvatar)
			r.Get("/skills/{kind}", profile.Skills)
			r.Post("/skills/{kind}", profile.AddSkill)
			r.Delete("/skills/{kind}/{name}", profile.RemoveSkill)
		})
		r.Post("/media/images", profile.UploadImage)

		r.Route("/people", func(r chi.Router) {
			r.Get("/", people.Discover)
			r.Get("/{id}", people.Get)
			r.Post("/{id}/actions/{kind}", people.Act)
		})

		r.Route("/connections", func(r chi.Router) {
			r.Get("/", people.Connections)
			r.Put("/{id}", people.Connect)
			r.Delete("/{id}", people.Disconnect)
		})
	})

	return r
}

func mountPosts(r chi.Router, h *PostHandler) {
	r.Get("/posts", h.List)
	r.Post("/posts", h.Create)
	r.Delete("/posts/{postID}", h.Delete)
	r.Post("/posts/{postID}/comments", h.Comment)
	r.Post("/posts/{postID}/like", h.Like)
	r.Post("/posts/{postID}/save", h.Save)
}
