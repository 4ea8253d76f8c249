package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/landlease/internal/common"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{common.ErrNotFound, http.StatusNotFound, "not_found"},
	{common.ErrAssetUnavailable, http.StatusConflict, "asset_unavailable"},
	{common.ErrAlreadyExists, http.StatusConflict, "already_exists"},
	{common.ErrConflict, http.StatusConflict, "conflict"},
	{common.ErrInvariantViolation, http.StatusInternalServerError, "invariant_violation"},
	{common.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "invalid_token"},
	{common.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
	{common.ErrSnapshotDisabled, http.StatusServiceUnavailable, "unavailable"},
}

// statusFor returns the HTTP status and error code for err. Unmatched
// errors are reported as internal with a generic message.
func statusFor(err error) (int, ErrorResponse) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			return es.status, ErrorResponse{Error: err.Error(), Code: es.code}
		}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal"}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}
