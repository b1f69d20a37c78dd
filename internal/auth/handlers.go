package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/example/medtranscribe/internal/models"
)

// Handler exposes the HTTP surface of the session manager
type Handler struct {
	manager *Manager
	secure  bool
}

// NewHandler creates an auth handler; secure controls the cookie flag
func NewHandler(manager *Manager, secure bool) *Handler {
	return &Handler{manager: manager, secure: secure}
}

// HandleLogin signs a clinician in with a locally supplied profile
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		sendJSON(w, models.APIResponse{Success: false, Error: "Invalid login payload"}, http.StatusBadRequest)
		return
	}

	session, err := h.manager.Login(profile)
	if err != nil {
		sendJSON(w, models.APIResponse{Success: false, Error: err.Error()}, http.StatusBadRequest)
		return
	}

	h.setSessionCookie(w, session)
	sendJSON(w, models.APIResponse{Success: true, Data: session.Profile}, http.StatusOK)
}

// HandleGoogleLogin redirects to the Google consent page
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	url, state, err := h.manager.GenerateLoginURL()
	if err != nil {
		sendJSON(w, models.APIResponse{Success: false, Error: err.Error()}, http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Secure:   h.secure,
	})
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleCallback completes the Google sign-in flow
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	session, err := h.manager.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Printf("OAuth callback failed: %v", err)
		http.Error(w, "Sign-in failed", http.StatusUnauthorized)
		return
	}

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// HandleProfile returns the signed-in clinician's profile
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		session = h.sessionFromCookie(r)
	}
	if session == nil {
		sendJSON(w, models.APIResponse{Success: false, Error: "Not signed in"}, http.StatusUnauthorized)
		return
	}

	sendJSON(w, models.APIResponse{Success: true, Data: session.Profile}, http.StatusOK)
}

// HandleLogout ends the session
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.manager.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secure,
	})
	sendJSON(w, models.APIResponse{Success: true, Message: "Signed out"}, http.StatusOK)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.Expiry,
		HttpOnly: true,
		Secure:   h.secure,
	})
}

func (h *Handler) sessionFromCookie(r *http.Request) *Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	session, err := h.manager.GetSession(cookie.Value)
	if err != nil {
		return nil
	}
	return session
}

func sendJSON(w http.ResponseWriter, response models.APIResponse, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode auth response: %v", err)
	}
}
