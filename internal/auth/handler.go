package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/joonpark/post-board/internal/api"
	"github.com/joonpark/post-board/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc   *Service
	debug bool
}

func NewHandler(svc *Service, debug bool) *Handler {
	return &Handler{svc: svc, debug: debug}
}

// Register creates a new user and returns it with a session token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		log.Printf("register error: %v", err)
		api.FailErr(w, err, "registration failed", h.debug)
		return
	}
	api.Created(w, resp, "registration successful")
}

// Login authenticates a user and returns it with a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		api.FailErr(w, err, "login failed", h.debug)
		return
	}
	api.OK(w, resp, "login successful")
}

// Users lists all registered users, passwords excluded.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		api.FailErr(w, err, "failed to list users", h.debug)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	api.OK(w, users, "users retrieved")
}
