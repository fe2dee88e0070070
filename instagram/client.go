package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"scraper.local/instagram-crawler/config"
)

// ErrPrivateAccount marks the forbidden-resource outcome: the target
// account's content is inaccessible. Callers mark the account private
// instead of counting a fault.
var ErrPrivateAccount = errors.New("account is private")

type Client struct {
	BaseURL   string
	Threshold int
	Cooldown  time.Duration
	clientID  string
	http      *http.Client
	log       zerolog.Logger
}

func NewClient(clientID string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:   config.INSTAGRAM_API_BASE,
		Threshold: config.THROTTLE_THRESHOLD,
		Cooldown:  config.THROTTLE_COOLDOWN,
		clientID:  clientID,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// RecentMedia fetches one page of an account's recent media starting at
// cursor (empty for the first page). The returned cursor is empty exactly
// when no further pages exist.
func (c *Client) RecentMedia(ctx context.Context, accountID int64, cursor string) ([]Media, string, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(config.RECENT_MEDIA_COUNT))
	if cursor != "" {
		params.Set("max_id", cursor)
	}
	code, body, err := c.request(ctx, fmt.Sprintf("/users/%d/media/recent", accountID), params)
	if err != nil {
		return nil, "", err
	}
	if code == http.StatusBadRequest {
		return nil, "", fmt.Errorf("recent media for account %d: %w", accountID, ErrPrivateAccount)
	}
	if code != http.StatusOK {
		return nil, "", fmt.Errorf("recent media for account %d: code %d", accountID, code)
	}
	var resp recentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("recent media for account %d: %w", accountID, err)
	}
	return resp.Data, resp.Pagination.NextMaxID, nil
}

// Followers returns the first page of accounts following accountID. The
// crawler never walks further pages.
func (c *Client) Followers(ctx context.Context, accountID int64) ([]AccountRef, error) {
	code, body, err := c.request(ctx, fmt.Sprintf("/users/%d/followed-by", accountID), nil)
	if err != nil {
		return nil, err
	}
	if code == http.StatusBadRequest {
		return nil, fmt.Errorf("followers for account %d: %w", accountID, ErrPrivateAccount)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("followers for account %d: code %d", accountID, code)
	}
	var resp followersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("followers for account %d: %w", accountID, err)
	}
	return resp.Data, nil
}

// SearchMedia returns one page of recent media near the coordinate.
func (c *Client) SearchMedia(ctx context.Context, latitude float64, longitude float64) ([]Media, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(longitude, 'f', -1, 64))
	code, body, err := c.request(ctx, "/media/search", params)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("media search: code %d", code)
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("media search: %w", err)
	}
	return resp.Data, nil
}

// request issues one GET and classifies the outcome by the status code the
// service embeds in the response body, falling back to the transport status.
// gjson keeps classification working even when the payload is not a shape
// we know how to decode.
func (c *Client) request(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("client_id", c.clientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	code := resp.StatusCode
	if meta := gjson.GetBytes(body, "meta.code"); meta.Exists() {
		code = int(meta.Int())
	}
	c.log.Debug().Int("code", code).Str("path", path).Msg("api request")
	c.cooldown(ctx, resp)
	return code, body, nil
}

// cooldown pauses when the remaining quota runs low, to avoid the service
// turning access off. The pause observes ctx so shutdown stays responsive.
func (c *Client) cooldown(ctx context.Context, resp *http.Response) {
	remaining := c.Threshold
	if v := resp.Header.Get("X-Ratelimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}
	if resp.StatusCode != http.StatusTooManyRequests && remaining >= c.Threshold {
		return
	}
	c.log.Info().Int("remaining", remaining).Msg("pausing to throttle api calls")
	select {
	case <-time.After(c.Cooldown):
	case <-ctx.Done():
	}
}
