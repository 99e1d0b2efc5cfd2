package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/pkg/errors"
)

// PantryHandlers handles pantry item requests
type PantryHandlers struct {
	pantry inbound.PantryService
	logger *zap.Logger
}

// NewPantryHandlers creates the pantry handlers
func NewPantryHandlers(pantry inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{
		pantry: pantry,
		logger: logger.Named("pantry-handlers"),
	}
}

// AddItemRequest is the add pantry item request body
type AddItemRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required,min=1,max=50"`
}

// UpdateItemRequest is the partial update body; absent fields stay unchanged
type UpdateItemRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Quantity *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit     *string  `json:"unit" validate:"omitempty,min=1,max=50"`
}

// List handles GET /api/pantry
func (h *PantryHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	items, err := h.pantry.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Add handles POST /api/pantry
func (h *PantryHandlers) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	item, err := h.pantry.Add(r.Context(), userID, inbound.AddPantryItemCommand{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/pantry/{id}
func (h *PantryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	itemID, err := itemIDFromURL(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req UpdateItemRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	item, err := h.pantry.Update(r.Context(), userID, itemID, inbound.UpdatePantryItemCommand{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Remove handles DELETE /api/pantry/{id}
func (h *PantryHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	itemID, err := itemIDFromURL(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.pantry.Remove(r.Context(), userID, itemID); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDFromURL parses the {id} route parameter. A malformed ID gets the
// same 404 as a missing item so IDs are not probeable.
func itemIDFromURL(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	itemID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewPantryItemNotFoundError(raw)
	}
	return itemID, nil
}
