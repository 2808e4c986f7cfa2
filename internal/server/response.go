package server

import (
	"encoding/json"
	"net/http"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// StatusFor maps an error code to the HTTP status returned to clients.
func StatusFor(err error) int {
	code := errors.GetCode(err)

	switch {
	case errors.IsValidation(err):
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeInvalidParameter,
		code == errors.ErrCodeInvalidPeriod,
		code == errors.ErrCodeInvalidType,
		code == errors.ErrCodeMissingParameter,
		code == errors.ErrCodeUnknownIndicator,
		code == errors.ErrCodeInvalidConfiguration,
		code == errors.ErrCodeInvalidVersion:
		return http.StatusBadRequest
	case code == errors.ErrCodeSessionNotFound,
		code == errors.ErrCodeDataNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeComputationCancelled,
		code == errors.ErrCodeDataSourceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Request failed", zap.Error(err))
	}

	s.writeJSON(w, status, ErrorResponse{
		OK:    false,
		Code:  int(errors.GetCode(err)),
		Error: err.Error(),
	})
}
