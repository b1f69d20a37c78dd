// Package auth provides clinician sign-in and session management
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/example/medtranscribe/internal/models"
)

// ProviderGoogle is the name of the Google OAuth provider
const ProviderGoogle = "google"

// SessionExpiry is how long a session stays valid
const SessionExpiry = 24 * time.Hour

// Session represents one signed-in clinician session
type Session struct {
	ID        string             `json:"id"`
	Profile   models.UserProfile `json:"profile"`
	Provider  string             `json:"provider"`
	Expiry    time.Time          `json:"expiry"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Manager keeps sessions in memory. Sessions are a capability check only;
// they carry the clinician's display profile, not authorization scopes.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	oauthConfig *oauth2.Config
}

// NewManager creates a session manager
func NewManager() *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
	}
	go m.cleanupSessions()
	return m
}

// ConfigureGoogle enables Google sign-in with the given OAuth credentials
func (m *Manager) ConfigureGoogle(clientID, clientSecret, redirectURL string) {
	if clientID == "" || clientSecret == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oauthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleEnabled reports whether Google sign-in is configured
func (m *Manager) GoogleEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.oauthConfig != nil
}

// Login creates a session for a locally supplied profile
func (m *Manager) Login(profile models.UserProfile) (*Session, error) {
	if profile.Name == "" || profile.Email == "" {
		return nil, errors.New("name and email are required")
	}
	return m.createSession(profile, "local"), nil
}

// GenerateLoginURL builds the Google consent URL and its state token
func (m *Manager) GenerateLoginURL() (string, string, error) {
	m.mu.RLock()
	oauthConfig := m.oauthConfig
	m.mu.RUnlock()

	if oauthConfig == nil {
		return "", "", errors.New("google sign-in is not configured")
	}

	state := uuid.NewString()
	return oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), state, nil
}

// HandleCallback exchanges an OAuth callback code for a session
func (m *Manager) HandleCallback(ctx context.Context, code string) (*Session, error) {
	m.mu.RLock()
	oauthConfig := m.oauthConfig
	m.mu.RUnlock()

	if oauthConfig == nil {
		return nil, errors.New("google sign-in is not configured")
	}
	if code == "" {
		return nil, errors.New("code not found in callback")
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	profile, err := getGoogleProfile(oauthConfig.Client(ctx, token))
	if err != nil {
		return nil, err
	}

	return m.createSession(profile, ProviderGoogle), nil
}

// GetSession retrieves an unexpired session by ID
func (m *Manager) GetSession(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New("session not found")
	}
	if session.Expiry.Before(time.Now()) {
		return nil, errors.New("session expired")
	}
	return session, nil
}

// Logout invalidates a session
func (m *Manager) Logout(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) createSession(profile models.UserProfile, provider string) *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		Profile:   profile,
		Provider:  provider,
		Expiry:    now.Add(SessionExpiry),
		CreatedAt: now,
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session
}

// cleanupSessions periodically removes expired sessions
func (m *Manager) cleanupSessions() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mu.Lock()
		for id, session := range m.sessions {
			if session.Expiry.Before(now) {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}

// getGoogleProfile retrieves the clinician profile from Google
func getGoogleProfile(client *http.Client) (models.UserProfile, error) {
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	var userInfo struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to decode user info: %w", err)
	}

	return models.UserProfile{
		Name:  userInfo.Name,
		Email: userInfo.Email,
	}, nil
}
