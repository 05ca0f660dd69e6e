package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chillax-ai/codemap/pkg/schema"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeCodemapError maps a structured error to an HTTP status and
// writes it as JSON. Non-structured errors become a 500.
func writeCodemapError(w http.ResponseWriter, err error) {
	var cerr *schema.CodemapError
	if !errors.As(err, &cerr) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, statusForCode(cerr.Code), cerr)
}

func statusForCode(code string) int {
	switch code {
	case schema.ErrCodeValidation, schema.ErrCodeDecode, schema.ErrCodeOutOfRange:
		return http.StatusBadRequest
	case schema.ErrCodeNotFound:
		return http.StatusNotFound
	case schema.ErrCodeFilter:
		return http.StatusUnprocessableEntity
	case schema.ErrCodeCancelled:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
