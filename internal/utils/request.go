package utils

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Query-string parsing helpers for the read-only listing endpoints.

// QueryUUID parses an optional UUID query parameter. A missing parameter is
// not an error; a malformed one is.
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

// QueryInt parses an optional integer query parameter, returning fallback
// when absent or malformed.
func QueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// QueryBool parses an optional boolean query parameter, defaulting to false.
func QueryBool(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	if err != nil {
		return false
	}

	return value
}
