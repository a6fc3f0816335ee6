package handler

import (
	"errors"
	"net/http"
	"strconv"

	"redline/internal/domain"
	"redline/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathInt64 parses a positive integer path segment.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return value, nil
}

// pathInt parses a positive integer path segment into an int.
func pathInt(r *http.Request, name string) (int, error) {
	value, err := pathInt64(r, name)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// queryVersion parses the optional ?version query parameter.
// Returns nil when absent, which downstream means "latest".
func queryVersion(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("version")
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return nil, errors.New("version must be a positive integer")
	}
	return &value, nil
}
