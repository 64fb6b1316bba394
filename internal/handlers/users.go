package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/elicaapp/elicappWeb/internal/logging"
	"github.com/elicaapp/elicappWeb/internal/services"
	"github.com/elicaapp/elicappWeb/internal/store"
	"github.com/elicaapp/elicappWeb/types"
)

// UserHandler provides HTTP handlers for the users resource.
type UserHandler struct {
	userService *services.UserService
	log         *logging.Logger
}

// NewUserHandler constructs a UserHandler with the provided dependencies.
func NewUserHandler(userService *services.UserService, log *logging.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, log *logging.Logger) {
	handler := NewUserHandler(userService, log)

	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetUser)
		r.Put("/", handler.UpdateUser)
		r.Delete("/", handler.DeleteUser)
	})
}

// UserRequest carries the writable fields of a user.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks that the required fields are present. Nothing beyond
// presence is verified.
func (req UserRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
	)
}

// ListUsers returns every user. An empty table is reported as 404; this
// matches the contract existing clients depend on, deliberately not the
// usual empty 200 array.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.respondStoreError(w, err, "list users")
		return
	}
	if len(users) == 0 {
		writeError(w, http.StatusNotFound, "no users found")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// CreateUser persists a new user and returns the stored row with its
// server-assigned id.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Create(r.Context(), types.User{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondStoreError(w, err, "create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// GetUser returns a single user by id.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUser overwrites a user's name and email unconditionally; there
// are no partial-update semantics.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Update(r.Context(), types.User{
		ID:    id,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.respondStoreError(w, err, "update user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user and returns a confirmation message rather
// than the deleted record.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err, "delete user")
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}

// respondStoreError is the single mapping point from storage errors to
// HTTP statuses: missing rows become 404, everything else collapses to a
// generic 500 with details logged server-side only.
func (h *UserHandler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	h.log.Error("storage failure", err, map[string]any{"op": op})
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func decodeUserRequest(w http.ResponseWriter, r *http.Request) (UserRequest, bool) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return UserRequest{}, false
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return UserRequest{}, false
	}
	return req, true
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "userID"))
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}
