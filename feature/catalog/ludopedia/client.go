// Package ludopedia implements the catalog.Client contract for the
// Ludopedia JSON API (api/v1), including its OAuth code exchange.
package ludopedia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"collection-manager/feature/catalog"

	"go.uber.org/zap"
)

// Public Ludopedia endpoints.
const (
	DefaultBaseURL  = "https://ludopedia.com.br/api/v1"
	DefaultOAuthURL = "https://ludopedia.com.br/oauth"
	DefaultTokenURL = "https://ludopedia.com.br/tokenrequest"
)

// collectionPageSize is the API's maximum rows per page.
const collectionPageSize = 100

// Client talks to the Ludopedia JSON API using an OAuth bearer token.
type Client struct {
	baseURL  string
	oauthURL string
	tokenURL string
	http     *http.Client
	delay    time.Duration
	logger   *zap.Logger
}

// New creates a Ludopedia client against the public endpoints.
func New(cfg catalog.Config, logger *zap.Logger) *Client {
	return NewWithBaseURL(DefaultBaseURL, DefaultOAuthURL, DefaultTokenURL, cfg, logger)
}

// NewWithBaseURL creates a Ludopedia client against custom endpoints (tests).
func NewWithBaseURL(baseURL, oauthURL, tokenURL string, cfg catalog.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		oauthURL: oauthURL,
		tokenURL: tokenURL,
		http:     &http.Client{Timeout: cfg.Timeout()},
		delay:    cfg.RequestDelay(),
		logger:   logger,
	}
}

// Source implements catalog.Client.
func (c *Client) Source() catalog.Source {
	return catalog.SourceLudopedia
}

// AuthorizeURL builds the OAuth authorization URL the user is sent to.
func (c *Client) AuthorizeURL(appID, redirectURI string) string {
	return fmt.Sprintf("%s?app_id=%s&redirect_uri=%s",
		c.oauthURL, url.QueryEscape(appID), url.QueryEscape(redirectURI))
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code, appID, appKey string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"code":    code,
		"app_id":  appID,
		"app_key": appKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned status %d", catalog.ErrUnauthorized, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: malformed token response: %w", catalog.ErrUnavailable, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", catalog.ErrUnauthorized)
	}
	return payload.AccessToken, nil
}

// Search implements catalog.Client. Search needs no credential.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	rows := limit
	if rows > collectionPageSize {
		rows = collectionPageSize
	}
	params := url.Values{
		"search": {query},
		"rows":   {strconv.Itoa(rows)},
	}

	var payload struct {
		Jogos []wireGame `json:"jogos"`
	}
	if err := c.get(ctx, "/jogos", params, "", &payload); err != nil {
		return nil, err
	}

	games := make([]catalog.Game, 0, limit)
	for _, jogo := range payload.Jogos {
		if len(games) >= limit {
			break
		}
		games = append(games, jogo.toGame())
	}
	return games, nil
}

// FetchDetails implements catalog.Client. The credential is the OAuth
// access token.
func (c *Client) FetchDetails(ctx context.Context, remoteID int64, accessToken string) (*catalog.Game, error) {
	var jogo wireGame
	err := c.get(ctx, "/jogos/"+strconv.FormatInt(remoteID, 10), nil, accessToken, &jogo)
	if err != nil {
		if errNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	g := jogo.toGame()
	return &g, nil
}

// FetchUserCollection implements catalog.Client. It walks the paginated
// collection and enriches every row with a detail fetch, spacing the calls
// by the configured delay to honor the API's rate limit. Detail failures
// fall back to the row's own fields.
func (c *Client) FetchUserCollection(ctx context.Context, accessToken string) ([]catalog.Game, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, fmt.Errorf("%w: missing access token", catalog.ErrUnauthorized)
	}

	var all []catalog.Game
	for page := 1; ; page++ {
		params := url.Values{
			"lista": {"colecao"},
			"rows":  {strconv.Itoa(collectionPageSize)},
			"page":  {strconv.Itoa(page)},
		}

		var payload struct {
			Colecao []wireGame `json:"colecao"`
		}
		if err := c.get(ctx, "/colecao", params, accessToken, &payload); err != nil {
			return nil, err
		}
		if len(payload.Colecao) == 0 {
			break
		}

		for _, row := range payload.Colecao {
			if strings.TrimSpace(row.Name) == "" {
				continue
			}

			g := row.toGame()
			detail, err := c.FetchDetails(ctx, row.ID, accessToken)
			if err != nil {
				c.logger.Warn("ludopedia detail fetch failed, using collection row",
					zap.Int64("remote_id", row.ID), zap.Error(err))
			} else if detail != nil {
				g = mergeDetail(g, *detail)
			}

			order := len(all)
			g.SequenceOrder = &order
			all = append(all, g)

			if c.delay > 0 {
				select {
				case <-ctx.Done():
					return nil, fmt.Errorf("%w: %w", catalog.ErrUnavailable, ctx.Err())
				case <-time.After(c.delay):
				}
			}
		}

		if len(payload.Colecao) < collectionPageSize {
			break
		}
	}
	return all, nil
}

// mergeDetail overlays the richer detail record on a collection row,
// keeping row values where the detail is silent.
func mergeDetail(row, detail catalog.Game) catalog.Game {
	merged := detail
	merged.RemoteID = row.RemoteID
	if merged.Name == "" {
		merged.Name = row.Name
	}
	if merged.Description == nil {
		merged.Description = row.Description
	}
	if merged.YearPublished == nil {
		merged.YearPublished = row.YearPublished
	}
	if merged.ImageURL == nil {
		merged.ImageURL = row.ImageURL
	}
	if merged.MinPlayers == nil {
		merged.MinPlayers = row.MinPlayers
	}
	if merged.MaxPlayers == nil {
		merged.MaxPlayers = row.MaxPlayers
	}
	if merged.MinPlaytime == nil {
		merged.MinPlaytime = row.MinPlaytime
	}
	if merged.MaxPlaytime == nil {
		merged.MaxPlaytime = row.MaxPlaytime
	}
	if merged.MinAge == nil {
		merged.MinAge = row.MinAge
	}
	// Purchase price only exists on the collection row.
	merged.PurchasePrice = row.PurchasePrice
	return merged
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ludopedia returned status %d", e.status)
}

func errNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, path string, params url.Values, accessToken string, dest any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", catalog.ErrUnauthorized, &statusError{resp.StatusCode})
	default:
		return fmt.Errorf("%w: %w", catalog.ErrUnavailable, &statusError{resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: malformed json: %w", catalog.ErrUnavailable, err)
	}
	return nil
}
