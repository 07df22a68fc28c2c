package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/opsboard/internal/dashboard"
	"github.com/hyperengineering/opsboard/internal/schema"
	"github.com/hyperengineering/opsboard/internal/store"
	"github.com/hyperengineering/opsboard/internal/validation"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

// problemBaseURI prefixes every problem type slug.
const problemBaseURI = "https://opsboard.dev/errors/"

type problemType struct {
	slug  string
	title string
}

var problemTypes = map[int]problemType{
	http.StatusBadRequest:            {"bad-request", "Bad Request"},
	http.StatusUnauthorized:          {"unauthorized", "Unauthorized"},
	http.StatusNotFound:              {"not-found", "Not Found"},
	http.StatusConflict:              {"conflict", "Conflict"},
	http.StatusRequestEntityTooLarge: {"payload-too-large", "Payload Too Large"},
	http.StatusUnprocessableEntity:   {"validation-error", "Validation Error"},
	http.StatusInternalServerError:   {"internal-error", "Internal Server Error"},
	http.StatusServiceUnavailable:    {"service-unavailable", "Service Unavailable"},
}

func newProblem(r *http.Request, status int, detail string) Problem {
	pt, ok := problemTypes[status]
	if !ok {
		pt = problemType{slug: "unknown", title: http.StatusText(status)}
	}
	return Problem{
		Type:     problemBaseURI + pt.slug,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}
}

func encodeProblem(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	encodeProblem(w, status, newProblem(r, status, detail))
}

// ProblemWithErrors extends Problem with validation error details.
type ProblemWithErrors struct {
	Problem
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

// WriteProblemWithErrors writes a 422 Problem Details response with field errors.
func WriteProblemWithErrors(w http.ResponseWriter, r *http.Request, detail string, errs []validation.ValidationError) {
	encodeProblem(w, http.StatusUnprocessableEntity, ProblemWithErrors{
		Problem: newProblem(r, http.StatusUnprocessableEntity, detail),
		Errors:  errs,
	})
}

// MapStoreError converts domain errors to Problem Details responses.
func MapStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteProblem(w, r, http.StatusNotFound, "Dataset not found")
	case errors.Is(err, store.ErrDatasetExists):
		WriteProblem(w, r, http.StatusConflict, "Dataset already exists")
	case errors.Is(err, store.ErrDatasetMismatch):
		WriteProblem(w, r, http.StatusConflict, "Dataset exists with a different kind")
	case errors.Is(err, store.ErrUnknownTask):
		WriteProblem(w, r, http.StatusUnprocessableEntity, "Event references an unknown task")
	case errors.Is(err, store.ErrDuplicateID):
		WriteProblem(w, r, http.StatusUnprocessableEntity, "Duplicate timeline ID")
	case errors.Is(err, schema.ErrUnknownKind):
		WriteProblem(w, r, http.StatusUnprocessableEntity, "Dataset kind has no registered schema")
	case errors.Is(err, dashboard.ErrUnknownGroup), errors.Is(err, dashboard.ErrTooManyWeeks):
		// Both messages carry only request-derived values.
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
	default:
		// Never expose internal error details to client
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
