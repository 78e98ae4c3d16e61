// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

const (
	// GitHubAPIURL is the endpoint for fetching the latest release
	GitHubAPIURL = "https://api.github.com/repos/dotandev/tronfee/releases/latest"
	// CheckInterval is how often we check for updates (24 hours)
	CheckInterval = 24 * time.Hour
	// RequestTimeout is the maximum time to wait for GitHub API
	RequestTimeout = 5 * time.Second
)

// Checker handles update checking logic
type Checker struct {
	currentVersion string
	cacheDir       string
}

// GitHubRelease represents the GitHub API response for a release
type GitHubRelease struct {
	TagName string `json:"tag_name"`
}

// CacheData stores the last check timestamp and latest version
type CacheData struct {
	LastCheck     time.Time `json:"last_check"`
	LatestVersion string    `json:"latest_version"`
}

// NewChecker creates a new update checker
func NewChecker(currentVersion string) *Checker {
	return &Checker{
		currentVersion: currentVersion,
		cacheDir:       getCacheDir(),
	}
}

// CheckForUpdates checks GitHub for a newer release and prints an upgrade
// hint when one exists. All failures are silent: the check must never get in
// the user's way.
func (c *Checker) CheckForUpdates() {
	if c.isUpdateCheckDisabled() {
		return
	}

	shouldCheck, err := c.shouldCheck()
	if err != nil || !shouldCheck {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
	defer cancel()

	latestVersion, err := c.fetchLatestVersion(ctx)
	if err != nil {
		return
	}

	if err := c.updateCache(latestVersion); err != nil {
		return
	}

	needsUpdate, err := c.compareVersions(c.currentVersion, latestVersion)
	if err != nil || !needsUpdate {
		return
	}

	fmt.Fprintf(os.Stderr, "\nA new version of tronfee is available: %s (current: %s)\n",
		latestVersion, c.currentVersion)
}

func (c *Checker) isUpdateCheckDisabled() bool {
	return os.Getenv("TRONFEE_NO_UPDATE_CHECK") != ""
}

// shouldCheck reports whether the last check is older than CheckInterval
func (c *Checker) shouldCheck() (bool, error) {
	data, err := c.readCache()
	if err != nil {
		// Missing or unreadable cache means we have never checked
		return true, nil
	}
	return time.Since(data.LastCheck) > CheckInterval, nil
}

func (c *Checker) fetchLatestVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, GitHubAPIURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var release GitHubRelease
	if err := json.Unmarshal(body, &release); err != nil {
		return "", err
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release has no tag name")
	}

	return release.TagName, nil
}

// compareVersions reports whether latest is strictly newer than current
func (c *Checker) compareVersions(current, latest string) (bool, error) {
	cv, err := version.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, err
	}
	lv, err := version.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, err
	}
	return lv.GreaterThan(cv), nil
}

func (c *Checker) cachePath() string {
	return filepath.Join(c.cacheDir, "update_check.json")
}

func (c *Checker) readCache() (*CacheData, error) {
	raw, err := os.ReadFile(c.cachePath())
	if err != nil {
		return nil, err
	}
	var data CacheData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Checker) updateCache(latestVersion string) error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return err
	}
	data := CacheData{
		LastCheck:     time.Now().UTC(),
		LatestVersion: latestVersion,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(c.cachePath(), raw, 0644)
}

func getCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".tronfee")
}
