package service

import (
	"encoding/json"
	"net/http"

	"link-catalog/internal/domain"
	"link-catalog/pkg/problemdetails"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeProblem writes an RFC 7807 Problem Details response
func writeProblem(w http.ResponseWriter, problem *problemdetails.ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}

// writeError maps a usecase error onto a problem response.
func (s *CatalogService) writeError(w http.ResponseWriter, r *http.Request, err error) {
	problem := problemFor(err)
	if problem.Status >= http.StatusInternalServerError {
		s.log.WithContext(r.Context()).Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeProblem(w, problem)
}

func problemFor(err error) *problemdetails.ProblemDetail {
	switch {
	case domain.IsInvalidFormat(err):
		return problemdetails.New(http.StatusBadRequest, problemdetails.TypeInvalidFormat,
			"Invalid Format", err.Error())
	case domain.IsUnauthorized(err):
		return problemdetails.New(http.StatusUnauthorized, problemdetails.TypeUnauthorized,
			"Unauthorized", "Administrator session required")
	case domain.IsNotFound(err):
		return problemdetails.New(http.StatusNotFound, problemdetails.TypeNotFound,
			"Not Found", "None of the provided URLs were found.")
	case domain.IsEmptyCatalog(err):
		return problemdetails.New(http.StatusNotFound, problemdetails.TypeEmptyCatalog,
			"No Image Available", "No images available")
	case domain.IsStorageUnavailable(err):
		return problemdetails.New(http.StatusServiceUnavailable, problemdetails.TypeStorageUnavailable,
			"Storage Unavailable", "The catalog store is unavailable, please retry later")
	default:
		return problemdetails.New(http.StatusInternalServerError, problemdetails.TypeInternalError,
			"Internal Server Error", "Internal server error")
	}
}

// successResponse is the envelope of successful administrative calls.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok(message string) successResponse {
	return successResponse{Success: true, Message: message}
}
