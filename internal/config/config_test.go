package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bg3icon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input: ./art
output: ./icons
prefix: MOD_
workers: 4
open: true
manifest: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Input:    "./art",
		Output:   "./icons",
		Prefix:   "MOD_",
		Workers:  4,
		Open:     true,
		Manifest: true,
	}, cfg)
}

func TestLoad_KeepsDefaultOutput(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input: ./art\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().Output, cfg.Output)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative workers": "workers: -1\n",
		"both prefixes":    "prefix: A_\nrandom_prefix: true\n",
		"bad yaml":         "workers: [1, 2\n",
		"wrong type":       "workers: many\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadOptional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.yaml")

	cfg, err := LoadOptional(missing, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOptional(missing, true)
	assert.Error(t, err)

	cfg, err = LoadOptional("", true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
