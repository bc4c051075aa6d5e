package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

const (
	msgServerError = "Server error"
	msgBadBody     = "Invalid request body"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, messageResponse{Message: message})
}

// statusFor maps an error category to an HTTP status. Bad credentials are
// 404 to match what existing clients expect from the login endpoint.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAuthentication):
		return http.StatusNotFound
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"message": ...}. Anything outside the error
// taxonomy is logged and hidden behind "Server error".
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, code, msgServerError)
		return
	}
	writeMessage(w, code, common.Message(err, msgServerError))
}

const maxBodyBytes = 1 << 20

// decodeJSON reads a single JSON object from the body. An empty body
// decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
