package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/yousef10-awadh/dev-events/internal/delivery/http/helpers"
	"github.com/yousef10-awadh/dev-events/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// writeDomainError maps domain errors onto the API error envelope:
// validation failures become 400, missing records and dangling event
// references 404, duplicate slugs 409, everything else 500 (logged).
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, verr.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.ErrEventNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateSlug):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrDuplicateSlug.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

// requireEventID validates the {eventID} path value. Writes a 400 and
// returns false when it is not a canonical UUID.
func requireEventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventID must be a valid UUID")
		return "", false
	}
	return eventID, true
}
