package main

import (
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/httputil"
	"github.com/AdamBeresnev/game-hub/internal/service"
	"github.com/AdamBeresnev/game-hub/views"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func newRouter(site *service.SiteService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Home(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load home page", err)
			return
		}
		render(w, r, views.HomePage(data))
	})

	r.Get("/posts", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Posts(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load posts", err)
			return
		}
		render(w, r, views.PostsPage(data))
	})

	r.Get("/posts/{slug}", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Post(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httputil.InternalServerError(w, "Failed to load post", err)
			return
		}
		if data.Post == nil {
			notFound(w, r, data.Categories, "Post not found")
			return
		}
		render(w, r, views.PostPage(data.Categories, *data.Post))
	})

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Tournaments(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load tournaments", err)
			return
		}
		render(w, r, views.TournamentsPage(data))
	})

	r.Get("/tournaments/{slug}", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Tournament(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httputil.InternalServerError(w, "Failed to load tournament", err)
			return
		}
		if data.Tournament == nil {
			notFound(w, r, data.Categories, "Tournament not found")
			return
		}
		render(w, r, views.TournamentPage(data.Categories, *data.Tournament))
	})

	r.Get("/categories/{slug}", func(w http.ResponseWriter, r *http.Request) {
		data, err := site.Category(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httputil.InternalServerError(w, "Failed to load category", err)
			return
		}
		if data.Category == nil {
			notFound(w, r, data.Categories, "Category not found")
			return
		}
		render(w, r, views.CategoryPage(data))
	})

	r.Get("/types/{postType}", func(w http.ResponseWriter, r *http.Request) {
		postType := content.PostType(chi.URLParam(r, "postType"))
		if !postType.Valid() {
			notFound(w, r, nil, "Unknown post type")
			return
		}
		data, err := site.PostType(r.Context(), postType)
		if err != nil {
			httputil.InternalServerError(w, "Failed to load posts", err)
			return
		}
		render(w, r, views.PostTypePage(data))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, nil, "Page not found")
	})

	return r
}

func render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	if err := views.Render(w, r, page); err != nil {
		slog.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}

func notFound(w http.ResponseWriter, r *http.Request, categories []content.Category, msg string) {
	slog.Warn("not found", "path", r.URL.Path, "message", msg)
	if err := views.RenderStatus(w, r, http.StatusNotFound, views.NotFoundPage(categories, msg)); err != nil {
		slog.Error("failed to render page", "path", r.URL.Path, "error", err)
	}
}
