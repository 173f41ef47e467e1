// Package router sets up the HTTP routes and middleware chains for the
// blog API. Routes are grouped by the role they require: public reads,
// authenticated actions, author publishing and admin moderation.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// Handlers bundles the handler groups the router wires up. Media may be
// nil when object storage is not configured.
type Handlers struct {
	Auth          *handlers.Auth
	Articles      *handlers.Articles
	Comments      *handlers.Comments
	Categories    *handlers.Categories
	Notifications *handlers.Notifications
	Media         *handlers.Media
}

// New creates the configured Chi router with all middleware and route
// groups wired up. commentLimiter throttles comment submission per client.
func New(sessionStore *session.Store, h Handlers, commentLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public reads and account endpoints.
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)

		r.Get("/categories", h.Categories.List)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.Articles.List)
			r.Get("/by-slug/{slug}", h.Articles.GetBySlug)
			r.Get("/{id}/related", h.Articles.Related)
			r.Get("/{id}/comments", h.Comments.ListByArticle)

			// Authenticated reader actions.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/{id}/like", h.Articles.Like)
				r.Delete("/{id}/like", h.Articles.Unlike)

				r.Group(func(r chi.Router) {
					r.Use(commentLimiter.Middleware)
					r.Post("/{id}/comments", h.Comments.Create)
				})
			})

			// Author publishing workflow.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAuthor)
				r.Post("/", h.Articles.Create)
				r.Put("/{id}", h.Articles.Update)
				r.Post("/{id}/publish", h.Articles.Publish)
				r.Post("/{id}/archive", h.Articles.Archive)
				r.Post("/{id}/unarchive", h.Articles.Unarchive)
				r.Delete("/{id}", h.Articles.Delete)
			})
		})

		// Authenticated user area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", h.Auth.Me)
			r.Get("/me/articles", h.Articles.Mine)
			r.Delete("/comments/{id}", h.Comments.Delete)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notifications.List)
				r.Post("/{id}/read", h.Notifications.MarkRead)
			})
		})

		// Author media library.
		if h.Media != nil {
			r.Route("/media", func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAuthor)
				r.Get("/", h.Media.List)
				r.Post("/", h.Media.Upload)
				r.Delete("/{id}", h.Media.Delete)
			})
		}

		// Admin moderation.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/comments/pending", h.Comments.Pending)
			r.Post("/comments/{id}/approve", h.Comments.Approve)
			r.Post("/comments/{id}/reject", h.Comments.Reject)
			r.Delete("/comments/{id}", h.Comments.AdminDelete)

			r.Delete("/articles/{id}", h.Articles.AdminDelete)

			r.Post("/categories", h.Categories.Create)
			r.Delete("/categories/{id}", h.Categories.Delete)

			r.Get("/users", h.Auth.ListUsers)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
