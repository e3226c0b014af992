// Package bgg implements the catalog.Client contract for the
// BoardGameGeek XML API (xmlapi2).
package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"collection-manager/feature/catalog"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public endpoint of the BGG XML API.
const DefaultBaseURL = "https://www.boardgamegeek.com/xmlapi2"

// collectionRetries bounds how often a 202 "request queued" response is
// retried before giving up. BGG prepares collection exports asynchronously.
const collectionRetries = 5

// Client talks to the BoardGameGeek XML API.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration
	logger  *zap.Logger
}

// New creates a BGG client. The delay spaces the 202 retries of the
// collection endpoint and sequential detail fetches.
func New(cfg catalog.Config, logger *zap.Logger) *Client {
	return NewWithBaseURL(DefaultBaseURL, cfg, logger)
}

// NewWithBaseURL creates a BGG client against a custom endpoint (tests).
func NewWithBaseURL(baseURL string, cfg catalog.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		delay:   cfg.RequestDelay(),
		logger:  logger,
	}
}

// Source implements catalog.Client.
func (c *Client) Source() catalog.Source {
	return catalog.SourceBGG
}

// Search implements catalog.Client.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	params := url.Values{
		"query": {query},
		"type":  {"boardgame,boardgameexpansion"},
	}

	var payload searchItems
	if err := c.get(ctx, "/search", params, &payload); err != nil {
		return nil, err
	}

	games := make([]catalog.Game, 0, limit)
	for _, item := range payload.Items {
		if len(games) >= limit {
			break
		}
		g := catalog.Game{
			RemoteID: item.ID,
			Name:     item.primaryName(),
			Kind:     kindFromType(item.Type),
		}
		if y := item.YearPublished.intValue(); y != nil {
			g.YearPublished = y
		}
		games = append(games, g)
	}
	return games, nil
}

// FetchDetails implements catalog.Client. BGG details need no credential.
func (c *Client) FetchDetails(ctx context.Context, remoteID int64, _ string) (*catalog.Game, error) {
	params := url.Values{
		"id":    {strconv.FormatInt(remoteID, 10)},
		"stats": {"1"},
	}

	var payload thingItems
	if err := c.get(ctx, "/thing", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}

	item := payload.Items[0]
	g := catalog.Game{
		RemoteID:      item.ID,
		Name:          item.primaryName(),
		Kind:          kindFromType(item.Type),
		YearPublished: item.YearPublished.intValue(),
		MinPlayers:    item.MinPlayers.intValue(),
		MaxPlayers:    item.MaxPlayers.intValue(),
		MinPlaytime:   item.MinPlaytime.intValue(),
		MaxPlaytime:   item.MaxPlaytime.intValue(),
		MinAge:        item.MinAge.intValue(),
	}
	if item.Description != "" {
		desc := item.Description
		g.Description = &desc
	}
	if item.Image != "" {
		img := item.Image
		g.ImageURL = &img
	}
	if r := item.Statistics.Ratings.Average.floatValue(); r != nil {
		rounded := round2(*r)
		g.Rating = &rounded
	}
	if w := item.Statistics.Ratings.AverageWeight.floatValue(); w != nil {
		rounded := round2(*w)
		g.Weight = &rounded
	}
	for _, rank := range item.Statistics.Ratings.Ranks {
		if rank.Name == "boardgame" {
			if pos, err := strconv.Atoi(rank.Value); err == nil && pos > 0 {
				g.RankPosition = &pos
			}
		}
	}
	return &g, nil
}

// FetchUserCollection implements catalog.Client. The credential is the BGG
// username; only owned games are requested.
func (c *Client) FetchUserCollection(ctx context.Context, username string) ([]catalog.Game, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: missing username", catalog.ErrUnauthorized)
	}

	params := url.Values{
		"username": {username},
		"own":      {"1"},
		"stats":    {"1"},
	}

	var payload collectionItems
	if err := c.getWithRetry(ctx, "/collection", params, &payload); err != nil {
		return nil, err
	}

	games := make([]catalog.Game, 0, len(payload.Items))
	for i, item := range payload.Items {
		order := i
		g := catalog.Game{
			RemoteID:      item.ObjectID,
			Name:          item.Name,
			Kind:          kindFromSubtype(item.Subtype),
			YearPublished: parseIntPtr(item.YearPublished),
			SequenceOrder: &order,
		}
		if item.Image != "" {
			img := item.Image
			g.ImageURL = &img
		}
		if s := item.Stats; s != nil {
			g.MinPlayers = parseIntPtr(s.MinPlayers)
			g.MaxPlayers = parseIntPtr(s.MaxPlayers)
			g.MinPlaytime = parseIntPtr(s.MinPlaytime)
			g.MaxPlaytime = parseIntPtr(s.MaxPlaytime)
			if r := s.Rating.Average.floatValue(); r != nil {
				rounded := round2(*r)
				g.Rating = &rounded
			}
		}
		games = append(games, g)
	}
	return games, nil
}

// get performs one request and decodes the XML body into dest.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	status, err := c.doOnce(ctx, path, params, dest)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: bgg returned status %d", catalog.ErrUnavailable, status)
	}
	return nil
}

// getWithRetry handles BGG's asynchronous collection preparation: a 202
// response means "queued, come back later".
func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values, dest any) error {
	for attempt := 0; attempt < collectionRetries; attempt++ {
		status, err := c.doOnce(ctx, path, params, dest)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusOK:
			return nil
		case http.StatusAccepted:
			c.logger.Debug("bgg collection queued, retrying",
				zap.Int("attempt", attempt+1))
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %w", catalog.ErrUnavailable, ctx.Err())
			case <-time.After(c.retryDelay()):
			}
		default:
			return fmt.Errorf("%w: bgg returned status %d", catalog.ErrUnavailable, status)
		}
	}
	return fmt.Errorf("%w: bgg collection still queued after %d attempts", catalog.ErrUnavailable, collectionRetries)
}

func (c *Client) doOnce(ctx context.Context, path string, params url.Values, dest any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := xml.NewDecoder(resp.Body).Decode(dest); err != nil {
		return 0, fmt.Errorf("%w: malformed xml: %w", catalog.ErrUnavailable, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) retryDelay() time.Duration {
	if c.delay > 0 {
		return c.delay
	}
	return time.Second
}

func kindFromType(itemType string) catalog.Kind {
	if itemType == "boardgameexpansion" {
		return catalog.KindExpansion
	}
	return catalog.KindBase
}

func kindFromSubtype(subtype string) catalog.Kind {
	if subtype == "boardgameexpansion" {
		return catalog.KindExpansion
	}
	return catalog.KindBase
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseIntPtr(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v == 0 {
		return nil
	}
	return &v
}
