package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"link-catalog/internal/domain"
)

// SessionCookieName carries the administrator session token.
const SessionCookieName = "session_token"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	successResponse
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/login
func (s *CatalogService) Login(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: expected username and password", domain.ErrInvalidFormat))
		return
	}

	session, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{successResponse: ok("Login successful"), ExpiresAt: session.ExpiresAt})
}

// Logout handles POST /api/logout
func (s *CatalogService) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionToken(r)); err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, ok("Logged out"))
}
