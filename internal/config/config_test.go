package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_Defaults(t *testing.T) {
	conf, meta, err := GetConfig(nil, "")
	require.NoError(t, err)
	require.False(t, meta.FileNotFound)

	require.Equal(t, "textures", conf.Output.Dir)
	require.Equal(t, "png", conf.Output.Formats)
	require.Equal(t, "http://localhost:8080/v1/messages", conf.Forge.Endpoint)
	require.Equal(t, "gemini-3-pro-image", conf.Forge.Model)
	require.Equal(t, 8096, conf.Forge.MaxTokens)
	require.Equal(t, 120*time.Second, conf.Forge.Timeout)
	require.Equal(t, time.Second, conf.Forge.Delay)
	require.Equal(t, "info", conf.Log.Level)
}

func TestGetConfig_Env(t *testing.T) {
	t.Setenv("BLOCKFORGE_FORGE_API_KEY", "secret")
	t.Setenv("BLOCKFORGE_FORGE_DELAY", "250ms")
	t.Setenv("BLOCKFORGE_OUTPUT_SEED", "42")

	conf, _, err := GetConfig(nil, "")
	require.NoError(t, err)
	require.Equal(t, "secret", conf.Forge.APIKey)
	require.Equal(t, 250*time.Millisecond, conf.Forge.Delay)
	require.Equal(t, int64(42), conf.Output.Seed)
}

func TestGetConfig_FileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockforge.yaml")
	err := os.WriteFile(path, []byte(`
output:
  dir: from-file
  workers: 3
forge:
  model: file-model
  timeout: 30s
`), 0644)
	require.NoError(t, err)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output", "textures", "")
	cmd.Flags().Int("workers", 0, "")
	require.NoError(t, cmd.Flags().Set("output", "from-flag"))

	conf, meta, err := GetConfig(cmd, path)
	require.NoError(t, err)
	require.False(t, meta.FileNotFound)
	// Explicit flag beats the file; unset flag leaves the file value.
	require.Equal(t, "from-flag", conf.Output.Dir)
	require.Equal(t, 3, conf.Output.Workers)
	require.Equal(t, "file-model", conf.Forge.Model)
	require.Equal(t, 30*time.Second, conf.Forge.Timeout)
}

func TestGetConfig_MissingFile(t *testing.T) {
	_, meta, err := GetConfig(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.True(t, meta.FileNotFound)
}

func TestGetConfig_Invalid(t *testing.T) {
	t.Setenv("BLOCKFORGE_OUTPUT_WORKERS", "-1")
	_, _, err := GetConfig(nil, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "output.workers")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	used, err := LoadDotEnv()
	require.NoError(t, err)
	require.False(t, used)

	require.NoError(t, os.WriteFile(".env", []byte("BLOCKFORGE_TEST_DOTENV=loaded\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("BLOCKFORGE_TEST_DOTENV") })
	used, err = LoadDotEnv()
	require.NoError(t, err)
	require.True(t, used)
	require.Equal(t, "loaded", os.Getenv("BLOCKFORGE_TEST_DOTENV"))
}
