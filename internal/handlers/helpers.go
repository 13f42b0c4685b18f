package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"

	"studykit-backend/internal/models"
	"studykit-backend/internal/services"
)

const maxJSONBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return false
	}
	return true
}

// captureError reports err to Sentry when the request carries a hub.
func captureError(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
}

func extractionStatus(kind services.ExtractionKind) int {
	switch kind {
	case services.KindInvalidURL, services.KindEmptyContent:
		return http.StatusBadRequest
	case services.KindNoTranscript, services.KindTranscriptDisabled, services.KindVideoUnavailable:
		return http.StatusNotFound
	case services.KindUnsupportedType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadGateway
	}
}

func writeExtractionError(w http.ResponseWriter, r *http.Request, err error) {
	var ee *services.ExtractionError
	if !errors.As(err, &ee) {
		captureError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to process content", r))
		return
	}

	status := extractionStatus(ee.Kind)
	if status >= http.StatusInternalServerError {
		captureError(r, err)
	}
	writeJSON(w, status, errorResp(strings.ToUpper(string(ee.Kind)), ee.Message, r))
}
