package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mergington/activities/shared/api"
	internal_errors "github.com/mergington/activities/shared/errors"
	"github.com/mergington/activities/shared/logger"
)

// WriteErrorAndStatusCode answers with {"detail": ...}. ErrorWithStatusCode
// picks the status and its message is shown; anything else is a 500 with a
// generic detail so internals do not leak.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		WriteJSON(w, e.StatusCode, api.ErrorResponse{Detail: e.Message})
		return
	}
	logger.Log.Error("unhandled error", "error", err)
	WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{Detail: "Internal server error"})
}

// WriteJSON encodes v before touching the response so an encoding failure can
// still produce a clean 500.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
