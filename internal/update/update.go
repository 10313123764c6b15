// Package update checks GitHub for newer paystack-cli releases.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/paystack/paystack-cli/internal/cache"
)

const (
	DefaultReleasesURL = "https://api.github.com/repos/paystack/paystack-cli/releases/latest"
	CheckTimeout       = 5 * time.Second
	cacheKey           = "latest-release"
)

// Release is the subset of the GitHub release payload the check needs.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Result describes how the running version compares to the latest release.
type Result struct {
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateURL       string `json:"update_url,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
}

// Checker fetches the latest release, remembering it in Cache when set.
type Checker struct {
	URL   string
	HTTP  *http.Client
	Cache cache.Cache
}

// NewChecker returns a Checker for the public releases feed.
func NewChecker(c cache.Cache) *Checker {
	return &Checker{URL: DefaultReleasesURL, HTTP: http.DefaultClient, Cache: c}
}

// Disabled reports whether PAYSTACK_NO_UPDATE_CHECK is set.
func Disabled() bool {
	return os.Getenv("PAYSTACK_NO_UPDATE_CHECK") != ""
}

// Check compares currentVersion against the latest release. It returns nil
// when the check is skipped or fails, so callers never block on it.
func (c *Checker) Check(ctx context.Context, currentVersion string) *Result {
	if currentVersion == "" || currentVersion == "dev" || Disabled() {
		return nil
	}

	release, ok := c.latest(ctx)
	if !ok {
		return nil
	}

	current := normalizeVersion(currentVersion)
	latest := normalizeVersion(release.TagName)
	result := &Result{
		CurrentVersion: strings.TrimPrefix(currentVersion, "v"),
		LatestVersion:  strings.TrimPrefix(release.TagName, "v"),
		UpdateURL:      release.HTMLURL,
	}
	if semver.IsValid(current) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, current) > 0
	}
	return result
}

func (c *Checker) latest(ctx context.Context) (Release, bool) {
	var release Release
	if c.Cache != nil && c.Cache.Get(ctx, cacheKey, &release) && release.TagName != "" {
		return release, true
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return release, false
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return release, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return release, false
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil || release.TagName == "" {
		return release, false
	}
	if c.Cache != nil {
		c.Cache.Put(ctx, cacheKey, release)
	}
	return release, true
}

func normalizeVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
