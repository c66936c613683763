package service

import (
	"net/http"

	"link-catalog/internal/domain"
)

// NoImagePath is where the redirect endpoint sends callers when the catalog is empty.
const NoImagePath = "/no-image"

// ImageInfo is the public view of a selected record.
type ImageInfo struct {
	URL         string `json:"url"`
	Tag         string `json:"tag"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspectRatio"`
}

type imageInfoResponse struct {
	Success bool      `json:"success"`
	Image   ImageInfo `json:"image"`
}

// RandomRedirect handles GET /api?tag=&ratio=
func (s *CatalogService) RandomRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	record, err := s.selection.Redirect(r.Context(), q.Get("tag"), q.Get("ratio"))
	if domain.IsEmptyCatalog(err) {
		http.Redirect(w, r, NoImagePath, http.StatusFound)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("X-Image-Tag", record.Tag)
	h.Set("X-Image-Dimensions", record.Dimensions())
	http.Redirect(w, r, record.URL, http.StatusFound)
}

// RandomInfo handles GET /api/info?tag=&ratio=
func (s *CatalogService) RandomInfo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	record, err := s.selection.Select(r.Context(), q.Get("tag"), q.Get("ratio"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, imageInfoResponse{
		Success: true,
		Image: ImageInfo{
			URL:         record.URL,
			Tag:         record.Tag,
			Width:       record.Width,
			Height:      record.Height,
			AspectRatio: record.AspectRatio(),
		},
	})
}

// Tags handles GET /tags
func (s *CatalogService) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.catalog.Tags(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "tags": tags})
}

// NoImage handles GET /no-image
func (s *CatalogService) NoImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeProblem(w, problemFor(domain.ErrEmptyCatalog))
}
