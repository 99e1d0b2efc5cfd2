package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/ports/inbound"
)

// AuthHandlers handles registration, login and profile requests
type AuthHandlers struct {
	users  inbound.UserService
	logger *zap.Logger
}

// NewAuthHandlers creates the authentication handlers
func NewAuthHandlers(users inbound.UserService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		users:  users,
		logger: logger.Named("auth-handlers"),
	}
}

// RegisterRequest is the registration request body. Health profile fields
// are optional.
type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	HeightCm  float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKg  float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	Age       int     `json:"age" validate:"omitempty,gt=0,lt=150"`
	DietType  string  `json:"diet_type" validate:"max=100"`
	Allergies string  `json:"allergies" validate:"max=500"`
	Goal      string  `json:"goal" validate:"max=200"`
}

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	token, err := h.users.Register(r.Context(), inbound.RegisterCommand{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		HeightCm:  req.HeightCm,
		WeightKg:  req.WeightKg,
		Age:       req.Age,
		DietType:  req.DietType,
		Allergies: req.Allergies,
		Goal:      req.Goal,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, token)
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	token, err := h.users.Login(r.Context(), inbound.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, token)
}

// Profile handles GET /api/auth/profile
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
