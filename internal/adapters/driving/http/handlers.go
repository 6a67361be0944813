package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gradtrack/gradtrack-core/internal/core/domain"
	"github.com/gradtrack/gradtrack-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// SuccessResponse represents a simple success response
// @Description Simple success response
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and cache connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Gmail integration endpoints

// handleGmailConnect godoc
// @Summary      Start Gmail connection
// @Description  Begin the Google OAuth consent flow and return the consent URL to redirect the user to
// @Tags         Gmail
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  driving.ConnectResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Failed to start authorization"
// @Router       /gmail/connect [post]
func (s *Server) handleGmailConnect(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := s.gmailService.Connect(r.Context(), driving.ConnectRequest{UserID: identity.UserID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			writeError(w, http.StatusInternalServerError, "failed to start authorization")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGmailCallback godoc
// @Summary      Gmail OAuth callback
// @Description  Receives the browser redirect from Google, completes the token exchange, and redirects back to the settings page with the outcome in the query string
// @Tags         Gmail
// @Param        state  query  string  false  "State token from the consent flow"
// @Param        code   query  string  false  "Authorization code"
// @Param        error  query  string  false  "Provider error code"
// @Success      302  "Redirect to the settings page"
// @Router       /gmail/callback [get]
func (s *Server) handleGmailCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := driving.CallbackRequest{
		Code:       q.Get("code"),
		State:      q.Get("state"),
		Error:      q.Get("error"),
		Credential: extractCredential(r),
	}

	if _, err := s.gmailService.Callback(r.Context(), req); err != nil {
		s.redirectToSettings(w, r, url.Values{
			"gmail":   {"error"},
			"message": {callbackReason(err)},
		})
		return
	}

	s.redirectToSettings(w, r, url.Values{"gmail": {"connected"}})
}

// handleGmailStatus godoc
// @Summary      Gmail connection status
// @Description  Reports whether the caller has a connected Gmail account. Unauthenticated callers see a disconnected status rather than an error.
// @Tags         Gmail
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.IntegrationStatus
// @Router       /gmail/status [get]
func (s *Server) handleGmailStatus(w http.ResponseWriter, r *http.Request) {
	var userID string
	if credential := extractCredential(r); credential != "" {
		if identity, err := s.identity.Verify(r.Context(), credential); err == nil {
			userID = identity.UserID
		}
	}

	writeJSON(w, http.StatusOK, s.gmailService.Status(r.Context(), userID))
}

// handleGmailDisconnect godoc
// @Summary      Disconnect Gmail
// @Description  Revoke the Google tokens best-effort and delete the stored integration
// @Tags         Gmail
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Failed to disconnect"
// @Router       /gmail/disconnect [post]
func (s *Server) handleGmailDisconnect(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentity(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.gmailService.Disconnect(r.Context(), identity.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "unauthorized")
		default:
			writeError(w, http.StatusInternalServerError, "failed to disconnect")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Deadline endpoints

// DeadlinePreviewRequest is the raw deadline input to preview.
// @Description Raw term deadlines plus an optional fallback date
type DeadlinePreviewRequest struct {
	Deadlines        []domain.TermDeadline `json:"deadlines"`
	FallbackDeadline string                `json:"fallback_deadline,omitempty" example:"2026-12-01"`
}

// DeadlinePreviewResponse is the sanitized and selected deadline view.
// @Description Sanitized deadlines with current/next selection and days remaining
type DeadlinePreviewResponse struct {
	Deadlines        []domain.TermDeadline `json:"deadlines"`
	Current          *domain.TermDeadline  `json:"current"`
	Next             *domain.TermDeadline  `json:"next"`
	IsPast           bool                  `json:"is_past"`
	DaysUntilCurrent *int                  `json:"days_until_current"`
	DaysUntilNext    *int                  `json:"days_until_next"`
}

// handleDeadlinePreview godoc
// @Summary      Preview deadline selection
// @Description  Sanitize raw term deadlines, pick the current and next one, and compute days remaining
// @Tags         Deadlines
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      DeadlinePreviewRequest  true  "Raw deadlines"
// @Success      200      {object}  DeadlinePreviewResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /deadlines/preview [post]
func (s *Server) handleDeadlinePreview(w http.ResponseWriter, r *http.Request) {
	var req DeadlinePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := time.Now()
	sanitized := domain.SanitizeDeadlines(req.Deadlines, req.FallbackDeadline)
	selection := domain.SelectCurrentAndNext(sanitized, now)

	writeJSON(w, http.StatusOK, DeadlinePreviewResponse{
		Deadlines:        sanitized,
		Current:          selection.Current,
		Next:             selection.Next,
		IsPast:           selection.IsPast,
		DaysUntilCurrent: domain.DaysUntil(selection.Current, now),
		DaysUntilNext:    domain.DaysUntil(selection.Next, now),
	})
}

// Helper functions

// redirectToSettings sends the browser back to the settings page with the
// outcome parameters merged into any query the settings URL already carries.
func (s *Server) redirectToSettings(w http.ResponseWriter, r *http.Request, params url.Values) {
	target, err := url.Parse(s.settingsURL)
	if err != nil {
		// Misconfigured settings URL; the outcome still must not leak as a
		// raw error page.
		http.Redirect(w, r, s.settingsURL, http.StatusFound)
		return
	}

	q := target.Query()
	for key, values := range params {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	target.RawQuery = q.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

// callbackReason maps a callback failure to the reason code surfaced to the
// settings page. Internal exchange details and unknown failures collapse to
// callback_failed; provider consent errors and the gate codes pass through.
func callbackReason(err error) string {
	var oauthErr *driving.OAuthError
	if !errors.As(err, &oauthErr) {
		return "callback_failed"
	}

	switch oauthErr.Code {
	case "exchange_failed", "":
		return "callback_failed"
	default:
		return oauthErr.Code
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
