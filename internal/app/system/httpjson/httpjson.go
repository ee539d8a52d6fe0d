// Package httpjson centralizes JSON encoding/decoding at the HTTP
// boundary and the mapping from apperr kinds to status codes.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/accounthub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; account payloads are tiny.
const maxBodyBytes = 1 << 20

// errorBody is the uniform failure payload: {"message": "..."}.
type errorBody struct {
	Message string `json:"message"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError classifies err via apperr.From and writes the mapped
// status with a {"message": ...} body. Internal errors are logged with
// their real cause; the client sees only the generic message.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.Internal && logger != nil {
		logger.Error("request failed", zap.Error(err))
	}
	Write(w, apperr.StatusCode(ae.Kind), errorBody{Message: ae.Message})
}

// Decode reads a JSON body into dst. A missing, oversized, or
// malformed body is a Validation error.
func Decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.Validationf("Request body is required")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperr.Validationf("Invalid request body")
	}
	return nil
}
