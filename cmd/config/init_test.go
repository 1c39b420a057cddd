package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/gpufan2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExampleConfig(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "etc", "gpufan2go.yaml")

	// WHEN
	err := writeExampleConfig(path, false)

	// THEN
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configuration.ExampleConfig, string(content))
}

func TestWriteExampleConfig_Exists(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "gpufan2go.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hysteresis: 3\n"), 0644))

	// WHEN
	err := writeExampleConfig(path, false)

	// THEN
	assert.ErrorContains(t, err, "already exists")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hysteresis: 3\n", string(content))
}

func TestWriteExampleConfig_Overwrite(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "gpufan2go.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hysteresis: 3\n"), 0644))

	// WHEN
	err := writeExampleConfig(path, true)

	// THEN
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configuration.ExampleConfig, string(content))
}
