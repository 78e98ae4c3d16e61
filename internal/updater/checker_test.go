// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	c := NewChecker("1.0.0")

	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{"newer patch", "1.0.0", "1.0.1", true},
		{"newer minor", "1.0.0", "1.1.0", true},
		{"newer major", "1.9.9", "2.0.0", true},
		{"same version", "1.0.0", "1.0.0", false},
		{"older latest", "1.1.0", "1.0.0", false},
		{"v prefixes are stripped", "v1.0.0", "v1.2.0", true},
		{"mixed prefixes", "1.0.0", "v1.0.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.compareVersions(tt.current, tt.latest)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompareVersionsRejectsGarbage(t *testing.T) {
	c := NewChecker("1.0.0")

	_, err := c.compareVersions("not-a-version", "1.0.0")
	assert.Error(t, err)

	_, err = c.compareVersions("1.0.0", "not-a-version")
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	c := &Checker{currentVersion: "1.0.0", cacheDir: t.TempDir()}

	// Missing cache means a check is due.
	shouldCheck, err := c.shouldCheck()
	require.NoError(t, err)
	assert.True(t, shouldCheck)

	require.NoError(t, c.updateCache("v1.2.3"))

	data, err := c.readCache()
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", data.LatestVersion)
	assert.WithinDuration(t, time.Now(), data.LastCheck, time.Minute)

	// A fresh cache suppresses the next check.
	shouldCheck, err = c.shouldCheck()
	require.NoError(t, err)
	assert.False(t, shouldCheck)
}

func TestUpdateCheckDisabledByEnv(t *testing.T) {
	t.Setenv("TRONFEE_NO_UPDATE_CHECK", "1")

	c := NewChecker("1.0.0")
	assert.True(t, c.isUpdateCheckDisabled())
}
