package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/repository"
)

const maxBodyBytes = 1 << 20

// jsonResponse writes data as JSON with status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// jsonError writes a JSON error response.
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonResponse(w, status, ErrorResponse{Error: message})
}

// handleError maps err onto a status code. Server-side failures are
// logged here.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	s.jsonError(w, err.Error(), status)
}

func statusFor(err error) int {
	var ve *domain.ValidationError
	var be *badRequestError
	switch {
	case errors.As(err, &ve), errors.As(err, &be):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, jira.ErrIssueNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

var errEmptyBody = &badRequestError{msg: "request body is required"}

// decodeJSON reads the request body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return &badRequestError{msg: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints where the body may be
// empty.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil && err != errEmptyBody {
		return err
	}
	return nil
}
