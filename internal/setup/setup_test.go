package setup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/collegemsg/internal/setup"
	"github.com/robalyx/collegemsg/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version = 1\n[export]\nindent = 2\n"), 0o644))

	logDir := filepath.Join(dir, "logs")

	app, err := setup.InitializeApp(configPath, logDir, nil)
	require.NoError(t, err)

	app.Logger.Info("hello")
	app.Cleanup()

	assert.Equal(t, configPath, app.ConfigPath)
	assert.Equal(t, 2, app.Config.Export.Indent)
	assert.NotEmpty(t, app.RunID)
	assert.FileExists(t, filepath.Join(app.LogManager.GetCurrentSessionDir(), "main.log"))
}

func TestInitializeApp_BadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version = 7\n"), 0o644))

	_, err := setup.InitializeApp(configPath, filepath.Join(dir, "logs"), nil)
	require.ErrorIs(t, err, config.ErrConfigVersionMismatch)
}
