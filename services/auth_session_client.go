package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// SessionUser is the identity resolved from the external provider's session
// endpoint.
type SessionUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	IsAdmin bool   `json:"isAdmin"`
}

// SessionResolver turns a request's Cookie header into a SessionUser.
// A (nil, nil) return means "no active session". Implementations must not
// fail open: transport or parse errors surface as errors, and callers treat
// them as unauthorized.
type SessionResolver interface {
	ResolveSession(cookieHeader string) (*SessionUser, error)
}

// AuthSessionClient resolves sessions against the identity provider over
// HTTP, forwarding the browser's cookies.
type AuthSessionClient struct {
	BaseURL string
	Client  *http.Client
}

func NewAuthSessionClient(baseURL string) *AuthSessionClient {
	return &AuthSessionClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveSession calls the provider's session endpoint.
func (c *AuthSessionClient) ResolveSession(cookieHeader string) (*SessionUser, error) {
	url := fmt.Sprintf("%s/api/auth/session", c.BaseURL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", cookieHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("Auth session endpoint returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("session fetch failed: %d", resp.StatusCode)
	}

	var out struct {
		User *SessionUser `json:"user"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	// An empty session body means no one is signed in.
	if out.User == nil || out.User.Email == "" {
		return nil, nil
	}
	return out.User, nil
}
