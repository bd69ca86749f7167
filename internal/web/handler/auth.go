package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/solhaven/astrocade/internal/services/identity"
)

// stateCookieName holds the OAuth state nonce between the redirect out
// and the callback.
const stateCookieName = "oauth_state"

// AuthHandler handles the identity provider login flow
type AuthHandler struct {
	provider identity.Provider
	sessions *identity.Service
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(provider identity.Provider, sessions *identity.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// BeginLogin handles GET /auth/discord: sets the state nonce and
// redirects to the provider's consent page.
func (h *AuthHandler) BeginLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusSeeOther)
}

// Callback handles GET /auth/discord/callback. Any failure in the
// exchange lands the user back on the public page; the detail goes to
// the log.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.Warn("oauth callback state mismatch")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The nonce is single-use.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		h.logger.Warn("oauth callback missing code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	profile, err := h.provider.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("oauth exchange failed",
			slog.String("provider", h.provider.Name()),
			slog.Any("error", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := h.sessions.CreateSession(profile)
	http.SetCookie(w, identity.SessionCookie(session))

	h.logger.Info("player logged in",
		slog.String("provider", h.provider.Name()),
		slog.String("player_id", string(profile.ID)))

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(identity.CookieName); err == nil {
		h.sessions.InvalidateSession(cookie.Value)
	}
	http.SetCookie(w, identity.ClearSessionCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
