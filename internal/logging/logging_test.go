package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"INFO":  zerolog.InfoLevel,
		" warn": zerolog.WarnLevel,
		"none":  zerolog.Disabled,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}

	got, ok := ParseLevel("verbose")
	require.False(t, ok)
	require.Equal(t, zerolog.InfoLevel, got)
}

func TestSetup_LogFile(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	path := filepath.Join(t.TempDir(), "blockforge.log")
	logger, cleanup, err := Setup(Config{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug().Str("texture", "coal_vein").Msg("generated")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"texture":"coal_vein"`)
	require.Contains(t, string(data), `"message":"generated"`)
}

func TestSetup_UnknownLevel(t *testing.T) {
	_, _, err := Setup(Config{Level: "loud"})
	require.Error(t, err)
}
