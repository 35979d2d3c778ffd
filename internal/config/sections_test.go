package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSections_MissingFileIsOpen(t *testing.T) {
	s, err := LoadSections(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	sec, ok := s.Lookup("cualquiera")
	assert.True(t, ok)
	assert.Equal(t, "cualquiera", sec.Label)

	_, ok = s.Lookup(" ")
	assert.False(t, ok)
}

func TestLoadSections_Catalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sections:
  - slug: cuidado-capilar
    label: Cuidado capilar
  - slug: cuidado-ropa
`), 0o644))

	s, err := LoadSections(path)
	require.NoError(t, err)
	require.Len(t, s.Items, 2)

	sec, ok := s.Lookup("cuidado-capilar")
	require.True(t, ok)
	assert.Equal(t, "Cuidado capilar", sec.Label)

	sec, ok = s.Lookup("cuidado-ropa")
	require.True(t, ok)
	assert.Equal(t, "cuidado-ropa", sec.Label)

	_, ok = s.Lookup("electronica")
	assert.False(t, ok)
}

func TestLoadSections_Invalid(t *testing.T) {
	dir := t.TempDir()

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("sections:\n  - slug: a\n  - slug: a\n"), 0o644))
	_, err := LoadSections(dup)
	assert.ErrorContains(t, err, "duplicate")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sections: [\n"), 0o644))
	_, err = LoadSections(bad)
	assert.ErrorContains(t, err, "parsing")
}

func TestLoad_BadMaxUploadKeepsDefault(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("MAX_UPLOAD_MB", "x")
	t.Setenv("COOKIE_SECURE", "true")

	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 8, c.MaxUploadMB)
	assert.True(t, c.CookieSecure)
	assert.Equal(t, "productos", c.UploadPrefix)
}
