package service

import "net/http"

// Healthz handles GET /healthz
func (s *CatalogService) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz; it fails while the store is unreachable.
func (s *CatalogService) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Ping(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
