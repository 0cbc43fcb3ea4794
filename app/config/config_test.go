package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, OutputText, cfg.Output)
}

func TestNewConfigFromFile(t *testing.T) {
	type testCase struct {
		name    string
		yaml    string
		want    *Config
		wantErr string
	}

	tcs := []testCase{
		{
			name: "full config",
			yaml: "log_level: warn\noutput: json\n",
			want: &Config{LogLevel: "warn", Output: OutputJSON},
		},
		{
			name: "defaults for missing fields",
			yaml: "log_level: debug\n",
			want: &Config{LogLevel: "debug", Output: OutputText},
		},
		{
			name: "empty file",
			yaml: "",
			want: &Config{LogLevel: "info", Output: OutputText},
		},
		{
			name:    "invalid log level",
			yaml:    "log_level: chatty\n",
			wantErr: "`log_level`",
		},
		{
			name:    "invalid output",
			yaml:    "output: xml\n",
			wantErr: "`output`",
		},
		{
			name:    "malformed yaml",
			yaml:    "log_level: [\n",
			wantErr: "unmarshal config",
		},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.yaml), 0o644))

			cfg, err := NewConfigFromFile(configPath)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, cfg)
		})
	}
}

func TestConfigOverride(t *testing.T) {
	cfg := NewDefaultConfig()

	require.NoError(t, cfg.Override("", ""))
	require.Equal(t, NewDefaultConfig(), cfg)

	require.NoError(t, cfg.Override("error", OutputJSON))
	require.Equal(t, "error", cfg.LogLevel)
	require.Equal(t, OutputJSON, cfg.Output)

	require.NoError(t, cfg.Override("debug", ""))
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, OutputJSON, cfg.Output)

	require.ErrorContains(t, cfg.Override("", "xml"), "`output`")
}

func TestNewConfigFromPath(t *testing.T) {
	cfg, err := NewConfigFromPath("")
	require.NoError(t, err)
	require.Equal(t, NewDefaultConfig(), cfg)

	_, err = NewConfigFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
