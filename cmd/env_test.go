package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodari-ai/sales-engine/internal/config"
)

func TestInitStoreSQLite(t *testing.T) {
	cfg = &config.Config{Store: config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
	}}

	st, err := initStore(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck

	require.NoError(t, st.Migrate(context.Background()))
}

func TestInitStoreUnsupportedDriver(t *testing.T) {
	cfg = &config.Config{Store: config.StoreConfig{Driver: "oracle"}}

	_, err := initStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestInitAgentsRequiresKey(t *testing.T) {
	cfg = &config.Config{}

	_, err := initAgents()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API key")
}
