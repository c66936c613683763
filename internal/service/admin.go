package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"link-catalog/internal/domain"
)

type uploadResponse struct {
	successResponse
	Stored int `json:"stored"`
}

type appendResponse struct {
	successResponse
	Added int `json:"added"`
	Total int `json:"total"`
}

type removalResponse struct {
	successResponse
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

type listResponse struct {
	Success   bool           `json:"success"`
	Links     domain.Catalog `json:"links"`
	TotalHits int64          `json:"totalHits"`
}

type batchDeleteRequest struct {
	URLsToDelete []string `json:"urlsToDelete"`
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return body, nil
}

func (s *CatalogService) readRecords(w http.ResponseWriter, r *http.Request) ([]domain.RawRecord, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	return domain.DecodeRecords(body)
}

// Upload handles POST /api/upload
func (s *CatalogService) Upload(w http.ResponseWriter, r *http.Request) {
	records, err := s.readRecords(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.catalog.ReplaceAll(r.Context(), records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{successResponse: ok(result.Message()), Stored: result.Stored})
}

// Append handles POST /api/append
func (s *CatalogService) Append(w http.ResponseWriter, r *http.Request) {
	records, err := s.readRecords(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.catalog.AppendUnique(r.Context(), records)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appendResponse{
		successResponse: ok(result.Message()),
		Added:           result.Added,
		Total:           result.Total,
	})
}

// BatchDelete handles POST /api/batch_delete
func (s *CatalogService) BatchDelete(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req batchDeleteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: urlsToDelete must be an array of strings", domain.ErrInvalidFormat))
		return
	}

	result, err := s.catalog.BatchDelete(r.Context(), req.URLsToDelete)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{
		successResponse: ok(result.Message()),
		Removed:         result.Removed,
		Remaining:       result.Remaining,
	})
}

// List handles GET /api/list
func (s *CatalogService) List(w http.ResponseWriter, r *http.Request) {
	catalog, hits, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Links: catalog, TotalHits: hits})
}

// Export handles GET /api/export
func (s *CatalogService) Export(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.catalog.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("image_links_backup_%s.json", time.Now().UTC().Format(time.DateOnly))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, catalog)
}

// Maintenance handles POST /api/maintenance. The caller waits for the whole sweep.
func (s *CatalogService) Maintenance(w http.ResponseWriter, r *http.Request) {
	result, err := s.sweep.Sweep(r.Context(), false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{
		successResponse: ok(result.Message()),
		Removed:         result.Removed,
		Remaining:       result.Remaining,
	})
}
