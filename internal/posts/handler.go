package posts

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joonpark/post-board/internal/api"
	"github.com/joonpark/post-board/internal/middleware"
	"github.com/joonpark/post-board/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Handler holds post HTTP handlers.
type Handler struct {
	svc   *Service
	debug bool
}

func NewHandler(svc *Service, debug bool) *Handler {
	return &Handler{svc: svc, debug: debug}
}

// positiveInt parses a query value as a positive integer, falling back to
// the default when absent or unparseable.
func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// List returns one page of posts, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := positiveInt(r.URL.Query().Get("page"), defaultPage)
	limit := positiveInt(r.URL.Query().Get("limit"), defaultLimit)

	posts, total, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		log.Printf("list posts error: %v", err)
		api.FailErr(w, err, "failed to list posts", h.debug)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	api.Paginated(w, posts, api.NewPagination(total, page, limit))
}

// Get returns a single post.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.FailErr(w, err, "failed to load post", h.debug)
		return
	}
	api.OK(w, post, "post retrieved")
}

// Create persists a new post authored by the authenticated user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		api.Fail(w, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req models.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	post, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		log.Printf("create post error: %v", err)
		api.FailErr(w, err, "failed to create post", h.debug)
		return
	}
	api.Created(w, post, "post created")
}

// Update edits the authenticated author's own post.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		api.Fail(w, http.StatusUnauthorized, "authentication required", "")
		return
	}

	var req models.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	post, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), claims.UserID, req)
	if err != nil {
		api.FailErr(w, err, "failed to update post", h.debug)
		return
	}
	api.OK(w, post, "post updated")
}

// Delete permanently removes the authenticated author's own post.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		api.Fail(w, http.StatusUnauthorized, "authentication required", "")
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		api.FailErr(w, err, "failed to delete post", h.debug)
		return
	}
	api.OK(w, nil, "post deleted")
}
