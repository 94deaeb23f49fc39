package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_Defaults(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Port)
	assert.NotEmpty(t, c.AllowedOrigins)
	assert.Equal(t, int64(10<<20), c.MaxUploadBytes)
	assert.Equal(t, "gender", c.Columns.Sensitive)
	assert.Equal(t, "label", c.Columns.YTrue)
	assert.Equal(t, "prediction", c.Columns.YPred)

	// File was materialized.
	assert.FileExists(t, filepath.Join(dir, configFileName))
}

func TestReadOrCreate_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)

	c.Port = 9999
	c.Columns.Sensitive = "race"
	require.NoError(t, Save(dir, c))

	got, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, 9999, got.Port)
	assert.Equal(t, "race", got.Columns.Sensitive)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestSave_Validation(t *testing.T) {
	assert.Error(t, Save("", getDefaultConfig()))
	assert.Error(t, Save(t.TempDir(), nil))
}
