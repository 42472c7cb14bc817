package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_WiresTheFullGraph(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PLUGSEEK_CONFIG", filepath.Join(dir, "config.json"))

	container, err := NewContainer()
	require.NoError(t, err)

	assert.NotNil(t, container.Config)
	assert.NotNil(t, container.Logger)
	assert.NotNil(t, container.LogLevel)
	assert.NotNil(t, container.ResponseCache)
	assert.NotNil(t, container.SpigetClient)
	assert.NotNil(t, container.ModrinthClient)
	assert.NotNil(t, container.SearchService)

	cliContainer := container.GetCLIContainer()
	require.NotNil(t, cliContainer)
	assert.Same(t, container.SearchService, cliContainer.SearchService)
	assert.Same(t, container.Config, cliContainer.Config)
	assert.Same(t, container.LogLevel, cliContainer.LogLevel)
}

func TestNewContainer_MalformedConfigFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"limit":`), 0644))
	t.Setenv("PLUGSEEK_CONFIG", path)

	_, err := NewContainer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize components")
}
