// Package updater checks the vendor store for new plugin releases.
package updater

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
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/neboloop/socialshare/internal/logging"
)

// HTTP timeout for the update check
const timeout = 15 * time.Second

// ErrNoLicense is returned when no license key is stored. The store only
// answers version requests for licensed sites.
var ErrNoLicense = errors.New("updater: no license key")

// Source identifies the product on the vendor store.
type Source struct {
	StoreURL string
	ItemName string
	ItemID   int
	SiteURL  string
}

// Result contains the outcome of an update check.
type Result struct {
	Available      bool   `json:"available"`
	CurrentVersion string `json:"currentVersion"`
	LatestVersion  string `json:"latestVersion"`
	PackageURL     string `json:"packageUrl,omitempty"`
	Homepage       string `json:"homepage,omitempty"`
	Changelog      string `json:"changelog,omitempty"`
}

// versionInfo is the subset of the get_version reply we read.
type versionInfo struct {
	NewVersion    string          `json:"new_version"`
	StableVersion string          `json:"stable_version"`
	Package       string          `json:"package"`
	Homepage      string          `json:"homepage"`
	URL           string          `json:"url"`
	Sections      json.RawMessage `json:"sections"`
}

// Check asks the store for the latest version of src licensed under key and
// compares it against currentVersion.
func Check(ctx context.Context, client *http.Client, src Source, key, currentVersion string) (*Result, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrNoLicense
	}
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	form := url.Values{}
	form.Set("edd_action", "get_version")
	form.Set("license", key)
	form.Set("item_name", src.ItemName)
	if src.ItemID != 0 {
		form.Set("item_id", strconv.Itoa(src.ItemID))
	}
	form.Set("version", currentVersion)
	form.Set("url", src.SiteURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, src.StoreURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("updater: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "socialshare/"+currentVersion)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("updater: fetch version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("updater: store returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("updater: read response: %w", err)
	}

	var info versionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("updater: decode response: %w", err)
	}

	latestTag := info.NewVersion
	if latestTag == "" {
		latestTag = info.StableVersion
	}
	if latestTag == "" {
		return nil, fmt.Errorf("updater: response carries no version")
	}

	latest := normalizeVersion(latestTag)
	current := normalizeVersion(currentVersion)

	homepage := info.Homepage
	if homepage == "" {
		homepage = info.URL
	}

	return &Result{
		Available:      latest != current && current != "dev" && isNewer(latest, current),
		CurrentVersion: currentVersion,
		LatestVersion:  latestTag,
		PackageURL:     info.Package,
		Homepage:       homepage,
		Changelog:      truncate(changelog(info.Sections), 500),
	}, nil
}

// changelog extracts sections.changelog. The store sends sections either as
// an object or as an opaque serialized string; the latter is ignored.
func changelog(raw json.RawMessage) string {
	var sections struct {
		Changelog string `json:"changelog"`
	}
	if len(raw) == 0 || json.Unmarshal(raw, &sections) != nil {
		return ""
	}
	return sections.Changelog
}

// normalizeVersion strips the leading "v" prefix for comparison.
func normalizeVersion(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), "v")
}

// isNewer does a simple semver comparison (major.minor.patch).
// Returns true if latest > current.
func isNewer(latest, current string) bool {
	lParts := splitVersion(latest)
	cParts := splitVersion(current)

	for i := 0; i < 3; i++ {
		if lParts[i] > cParts[i] {
			return true
		}
		if lParts[i] < cParts[i] {
			return false
		}
	}
	return false
}

// splitVersion parses "1.2.3" into [1, 2, 3]. Missing parts are 0, so "1.0"
// equals "1.0.0".
func splitVersion(v string) [3]int {
	var parts [3]int
	fmt.Sscanf(v, "%d.%d.%d", &parts[0], &parts[1], &parts[2])
	return parts
}

// NotifyFunc is called when a new version is detected.
type NotifyFunc func(result *Result)

// BackgroundChecker runs the update check on a cron schedule and notifies
// once per new version.
type BackgroundChecker struct {
	client       *http.Client
	source       Source
	version      string
	licenseKey   func() string
	notify       NotifyFunc
	lastNotified string
	mu           sync.Mutex
}

// NewBackgroundChecker creates a checker. licenseKey is read on every run so
// key changes take effect without a restart.
func NewBackgroundChecker(client *http.Client, src Source, currentVersion string, licenseKey func() string, notify NotifyFunc) *BackgroundChecker {
	return &BackgroundChecker{
		client:     client,
		source:     src,
		version:    currentVersion,
		licenseKey: licenseKey,
		notify:     notify,
	}
}

// Schedule registers the check with c under a cron spec such as "@daily".
func (b *BackgroundChecker) Schedule(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() { b.RunOnce(ctx) })
	if err != nil {
		return 0, fmt.Errorf("updater: schedule %q: %w", spec, err)
	}
	return id, nil
}

// RunOnce performs a single check and notifies if a version we haven't
// already reported is available.
func (b *BackgroundChecker) RunOnce(ctx context.Context) {
	result, err := Check(ctx, b.client, b.source, b.licenseKey(), b.version)
	if errors.Is(err, ErrNoLicense) {
		return
	}
	if err != nil {
		logging.Warnw("update check failed", "error", err)
		return
	}
	if !result.Available {
		return
	}

	b.mu.Lock()
	alreadyNotified := b.lastNotified == result.LatestVersion
	if !alreadyNotified {
		b.lastNotified = result.LatestVersion
	}
	b.mu.Unlock()

	if !alreadyNotified && b.notify != nil {
		b.notify(result)
	}
}

// truncate limits a string to maxLen characters, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
