package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultGoogleAuthURL is Google's OAuth consent endpoint.
	DefaultGoogleAuthURL = "https://accounts.google.com/o/oauth2/auth"
	// DefaultGoogleTokenURL is Google's code exchange endpoint.
	DefaultGoogleTokenURL = "https://oauth2.googleapis.com/token"
	// DefaultGoogleUserInfoURL returns the signed-in user's profile.
	DefaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleProfile is the subset of the Google userinfo response the
// application needs to create or link an account.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Google performs the server side of the Google sign-in flow.
type Google struct {
	cfg         Config
	httpClient  *http.Client
	authURL     string
	tokenURL    string
	userInfoURL string
}

// NewGoogle creates a Google sign-in client against the public endpoints.
func NewGoogle(cfg Config) *Google {
	return NewGoogleWithURLs(cfg, DefaultGoogleAuthURL, DefaultGoogleTokenURL, DefaultGoogleUserInfoURL)
}

// NewGoogleWithURLs creates a Google sign-in client against custom
// endpoints. Used by tests.
func NewGoogleWithURLs(cfg Config, authURL, tokenURL, userInfoURL string) *Google {
	return &Google{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		authURL:     authURL,
		tokenURL:    tokenURL,
		userInfoURL: userInfoURL,
	}
}

// Enabled reports whether the client has credentials to operate with.
func (g *Google) Enabled() bool {
	return g.cfg.GoogleEnabled()
}

// AuthorizeURL builds the consent page URL the user is sent to.
func (g *Google) AuthorizeURL() string {
	q := url.Values{}
	q.Set("client_id", g.cfg.GoogleClientID)
	q.Set("redirect_uri", g.cfg.GoogleRedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("access_type", "offline")
	return g.authURL + "?" + q.Encode()
}

// Exchange trades an authorization code for an access token.
func (g *Google) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", g.cfg.GoogleClientID)
	form.Set("client_secret", g.cfg.GoogleClientSecret)
	form.Set("redirect_uri", g.cfg.GoogleRedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchanging google code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("google token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decoding google token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("google token response missing access_token")
	}
	return payload.AccessToken, nil
}

// FetchProfile loads the signed-in user's profile with an access token.
func (g *Google) FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding google profile: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google profile missing email")
	}
	return &profile, nil
}
