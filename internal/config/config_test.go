package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "tns", c.NsExtension)
	assert.Empty(t, c.WebExtension)
	assert.True(t, c.Interactive)
	assert.Equal(t, "~8.6.0", c.NativeScript.Core)
	assert.Empty(t, c.Path())
}

func TestLoadFindsParentFile(t *testing.T) {
	root := t.TempDir()
	content := "nsExtension: mobile\nwebExtension: web\nlog:\n  verbosity: 2\nnativescript:\n  core: 8.7.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0o644))

	sub := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	c, err := Load(sub)
	require.NoError(t, err)
	assert.Equal(t, "mobile", c.NsExtension)
	assert.Equal(t, "web", c.WebExtension)
	assert.Equal(t, 2, c.Log.Verbosity)
	assert.Equal(t, "8.7.0", c.NativeScript.Core)
	assert.Equal(t, "~3.0.2", c.NativeScript.Theme)
	assert.Equal(t, filepath.Join(root, FileName), c.Path())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FORGE_NATIVE_NSEXTENSION", "ns")

	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "ns", c.NsExtension)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty ns extension", func(c *Config) { c.NsExtension = "" }},
		{"dotted extension", func(c *Config) { c.NsExtension = ".tns" }},
		{"same extensions", func(c *Config) { c.WebExtension = "tns" }},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	c := Default()
	c.WebExtension = "web"
	require.NoError(t, c.Save(path))

	loaded, err := Load(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, "web", loaded.WebExtension)
	assert.Equal(t, c.NativeScript, loaded.NativeScript)
}
