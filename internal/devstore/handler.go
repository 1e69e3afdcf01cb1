// Package devstore serves the read side of the bucket API from a local
// object store, so the site can run against fixtures.
package devstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/game-hub/internal/cosmic"
	"github.com/AdamBeresnev/game-hub/internal/httputil"
	"github.com/AdamBeresnev/game-hub/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Finder is the part of *store.ObjectStore the handler needs.
type Finder interface {
	Find(ctx context.Context, q cosmic.Query) (*cosmic.ObjectsResponse, error)
}

type Handler struct {
	objects Finder
	bucket  string
	readKey string
}

// NewHandler serves bucket. An empty readKey accepts any request.
func NewHandler(objects Finder, bucket, readKey string) *Handler {
	return &Handler{objects: objects, bucket: bucket, readKey: readKey}
}

// Routes mounts the objects endpoint under /v3, matching the hosted API.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/v3/buckets/{bucket}/objects", h.listObjects)
	return r
}

func (h *Handler) listObjects(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "bucket") != h.bucket {
		httputil.JSONError(w, http.StatusNotFound, "Bucket not found")
		return
	}
	params := r.URL.Query()
	if h.readKey != "" && params.Get("read_key") != h.readKey {
		httputil.JSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q, err := parseQuery(params.Get("query"))
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if props := params.Get("props"); props != "" {
		for _, p := range strings.Split(props, ",") {
			if p = strings.TrimSpace(p); p != "" {
				q.Props = append(q.Props, p)
			}
		}
	}
	depth, err := intParam(params.Get("depth"), "depth")
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if depth > 0 {
		q.Depth = cosmic.DepthOne
	}
	if q.Limit, err = intParam(params.Get("limit"), "limit"); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if q.Skip, err = intParam(params.Get("skip"), "skip"); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.objects.Find(r.Context(), q)
	if errors.Is(err, store.ErrNotFound) {
		httputil.JSONError(w, http.StatusNotFound, "No objects found")
		return
	}
	if err != nil {
		httputil.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func parseQuery(raw string) (cosmic.Query, error) {
	if raw == "" {
		return cosmic.Query{}, errors.New("query parameter is required")
	}
	var selector map[string]any
	if err := json.Unmarshal([]byte(raw), &selector); err != nil {
		return cosmic.Query{}, fmt.Errorf("query is not a JSON object: %w", err)
	}
	objectType, _ := selector["type"].(string)
	if objectType == "" {
		return cosmic.Query{}, errors.New("query must name an object type")
	}

	q := cosmic.Query{Type: objectType}
	for path, value := range selector {
		if path != "type" {
			q = q.Where(path, value)
		}
	}
	return q, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
