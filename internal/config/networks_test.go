// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotandev/tronfee/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadCustomNetworksMissingFile(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadCustomNetworks()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Networks)
	assert.Empty(t, cfg.Networks)
}

func TestAddAndGetCustomNetwork(t *testing.T) {
	home := isolateHome(t)

	err := AddCustomNetwork("private", rpc.NetworkConfig{FullNodeURL: "http://localhost:8090"})
	require.NoError(t, err)

	got, err := GetCustomNetwork("private")
	require.NoError(t, err)
	assert.Equal(t, "private", got.Name)
	assert.Equal(t, "http://localhost:8090", got.FullNodeURL)

	// The file must not be world-readable.
	info, err := os.Stat(filepath.Join(home, ".tronfee", "networks.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestGetCustomNetworkNotFound(t *testing.T) {
	isolateHome(t)

	_, err := GetCustomNetwork("nope")
	assert.Error(t, err)
}

func TestListAndRemoveCustomNetworks(t *testing.T) {
	isolateHome(t)

	require.NoError(t, AddCustomNetwork("one", rpc.NetworkConfig{FullNodeURL: "http://one:8090"}))
	require.NoError(t, AddCustomNetwork("two", rpc.NetworkConfig{FullNodeURL: "http://two:8090"}))

	names, err := ListCustomNetworks()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, names)

	require.NoError(t, RemoveCustomNetwork("one"))

	names, err = ListCustomNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, names)

	assert.Error(t, RemoveCustomNetwork("one"))
}

func TestAddCustomNetworkOverwrites(t *testing.T) {
	isolateHome(t)

	require.NoError(t, AddCustomNetwork("private", rpc.NetworkConfig{FullNodeURL: "http://old:8090"}))
	require.NoError(t, AddCustomNetwork("private", rpc.NetworkConfig{FullNodeURL: "http://new:8090"}))

	got, err := GetCustomNetwork("private")
	require.NoError(t, err)
	assert.Equal(t, "http://new:8090", got.FullNodeURL)
}
