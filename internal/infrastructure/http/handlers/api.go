// Package handlers provides the HTTP handlers for the JSON API
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/infrastructure/http/middleware"
	"github.com/pantrywizard/v2/pkg/errors"
)

var validate = validator.New()

// respondJSON writes data as a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError maps any error onto the standard error body. Server-side
// failures are logged with their cause; client errors are not.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "request failed")
	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(appErr),
		)
	}
	middleware.WriteError(w, r, appErr)
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation on it
func decodeAndValidate(r *http.Request, dst interface{}) *errors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewAppError(errors.CodeBadRequest, "Invalid JSON payload", err.Error())
	}

	if err := validate.Struct(dst); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.NewValidationError(err.Error())
		}
		details := make([]errors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, errors.ValidationError{
				Field:   fe.Field(),
				Value:   fe.Value(),
				Tag:     fe.Tag(),
				Message: fmt.Sprintf("field %s failed validation on %s", fe.Field(), fe.Tag()),
			})
		}
		return errors.NewValidationErrors(details)
	}

	return nil
}

// authenticatedUser pulls the user ID the auth middleware stored in the
// request context
func authenticatedUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, found := middleware.UserID(r.Context())
	if !found {
		middleware.WriteError(w, r, errors.NewUnauthorizedError(""))
		return uuid.Nil, false
	}
	return id, true
}
