package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayush/edusync-gateway/internal/api"
	"github.com/ayush/edusync-gateway/internal/models"
	"github.com/ayush/edusync-gateway/internal/render"
)

// Messages shown by the registration form.
const (
	MsgRegistered     = "Registration successful! Please login."
	MsgDuplicateEmail = "Email already exists. Please use a different email."
	MsgUnreachable    = "Unable to connect to the server. Please try again later."
	MsgRegisterFailed = "Registration failed. Please try again."
)

// UserService is the part of the backend client the auth handlers need.
type UserService interface {
	RegisterUser(ctx context.Context, reg models.UserRegistration) (*models.User, error)
	LoginUser(ctx context.Context, creds models.Credentials) (json.RawMessage, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Handler holds the registration and login HTTP handlers.
type Handler struct {
	users UserService
	newID func() string
}

func NewHandler(users UserService) *Handler {
	return &Handler{users: users, newID: func() string { return uuid.New().String() }}
}

// RegisterRequest is the JSON body for POST /api/register.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"passwordHash"`
}

// Register creates a user on the backend with a freshly generated id.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := render.Decode(r, &req); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Name == "" || req.Email == "" || req.PasswordHash == "" {
		render.Message(w, http.StatusBadRequest, "name, email, and password are required")
		return
	}
	if !models.ValidRole(req.Role) {
		render.Message(w, http.StatusBadRequest, "role must be Student or Instructor")
		return
	}

	user, err := h.users.RegisterUser(r.Context(), models.UserRegistration{
		UserID:       h.newID(),
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		log.Printf("registration error: %v", err)
		status, msg := RegistrationMessage(err)
		render.Message(w, status, msg)
		return
	}

	user.PasswordHash = ""
	render.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": MsgRegistered,
		"user":    user,
	})
}

// RegistrationMessage maps a RegisterUser failure onto the one message the
// form displays.
func RegistrationMessage(err error) (int, string) {
	switch api.KindOf(err) {
	case api.KindConflict:
		return http.StatusConflict, MsgDuplicateEmail
	case api.KindServerMessage:
		return render.Status(err)
	case api.KindNetworkUnavailable:
		return http.StatusServiceUnavailable, MsgUnreachable
	default:
		return http.StatusBadGateway, MsgRegisterFailed
	}
}

// Login relays the credentials and returns the backend's payload as is.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := render.Decode(r, &creds); err != nil {
		render.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.PasswordHash == "" {
		render.Message(w, http.StatusBadRequest, "email and password are required")
		return
	}

	payload, err := h.users.LoginUser(r.Context(), creds)
	if err != nil {
		render.Error(w, err)
		return
	}
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// User returns one user by id.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	user.PasswordHash = ""
	render.JSON(w, http.StatusOK, user)
}
