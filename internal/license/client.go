// Package license talks to the vendor store's license API and keeps the
// stored license status current.
package license

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Status is the license state reported by the store.
type Status string

const (
	StatusValid    Status = "valid"
	StatusInvalid  Status = "invalid"
	StatusExpired  Status = "expired"
	StatusInactive Status = "inactive"
)

// ParseStatus folds the store's wider vocabulary into the four states the
// plugin tracks. Unknown answers count as invalid.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid":
		return StatusValid
	case "expired":
		return StatusExpired
	case "inactive", "site_inactive", "deactivated":
		return StatusInactive
	}
	return StatusInvalid
}

// ErrNoLicenseKey is returned when an operation needs a key and none is set.
var ErrNoLicenseKey = errors.New("license: no license key")

const defaultTimeout = 35 * time.Second

// ClientConfig describes the store endpoint and the product being licensed.
type ClientConfig struct {
	StoreURL string
	ItemName string
	ItemID   int
	// SiteURL identifies the activating site to the store.
	SiteURL string
	Timeout time.Duration
}

// Client calls the store's license API.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

// response is the subset of the store reply we read.
type response struct {
	Success bool   `json:"success"`
	License string `json:"license"`
	Expires string `json:"expires,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Activate registers this site against key.
func (c *Client) Activate(ctx context.Context, key string) (Status, error) {
	return c.call(ctx, "activate_license", key, true)
}

// Deactivate releases this site's activation.
func (c *Client) Deactivate(ctx context.Context, key string) (Status, error) {
	return c.call(ctx, "deactivate_license", key, false)
}

// Check asks the store for the current state of key.
func (c *Client) Check(ctx context.Context, key string) (Status, error) {
	return c.call(ctx, "check_license", key, false)
}

func (c *Client) call(ctx context.Context, action, key string, withItemID bool) (Status, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrNoLicenseKey
	}

	form := url.Values{}
	form.Set("edd_action", action)
	form.Set("license", key)
	form.Set("item_name", c.cfg.ItemName)
	if withItemID && c.cfg.ItemID != 0 {
		form.Set("item_id", strconv.Itoa(c.cfg.ItemID))
	}
	form.Set("url", c.cfg.SiteURL)

	var resp response
	if err := c.post(ctx, form, &resp); err != nil {
		return "", fmt.Errorf("license: %s: %w", action, err)
	}
	if resp.License == "" {
		return "", fmt.Errorf("license: %s: empty license field in response", action)
	}
	return ParseStatus(resp.License), nil
}

func (c *Client) post(ctx context.Context, form url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.StoreURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate limits a string to maxLen characters, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
