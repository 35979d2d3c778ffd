package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin.cl/app/internal/database"
	"catalogadmin.cl/app/internal/modules/products"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestSections(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "sections.yaml", `
sections:
  - slug: cuidado-capilar
    label: Cuidado capilar
  - slug: cuidado-ropa
    label: Cuidado de la ropa
`)

	out, err := run(t, "sections", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "cuidado-capilar")
	assert.Contains(t, out, "Cuidado de la ropa")
}

func TestSections_MissingFileIsOpenCatalog(t *testing.T) {
	out, err := run(t, "sections", "--file", filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "any section slug is accepted")
}

func TestSeed_InsertsAndSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "catalog.db")
	file := writeFile(t, dir, "seed.yaml", `
products:
  - name: Shampoo
    price: "4990"
    description: Limpieza suave
    category: cuidado-capilar
  - name: Detergente
    price: "8990.5"
    description: 3 litros
    category: cuidado-ropa
`)

	out, err := run(t, "seed", "--file", file, "--db-driver", "sqlite", "--dsn", dsn, "--migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 product(s), skipped 0")

	out, err = run(t, "seed", "--file", file, "--db-driver", "sqlite", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 product(s), skipped 2")

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	items, err := products.NewRepo(db).ListByCategory(context.Background(), "cuidado-ropa")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "8990.5", items[0].Price.String())
}

func TestSeed_RejectsBadPrice(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "seed.yaml", `
products:
  - name: Shampoo
    price: gratis
    description: x
    category: cuidado-capilar
`)

	_, err := run(t, "seed", "--file", file, "--db-driver", "sqlite", "--dsn", filepath.Join(dir, "c.db"), "--migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid price")
}

func TestUpload_LocalDriver(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("LOCAL_UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("LOCAL_UPLOAD_URL_PREFIX", "/uploads")
	img := writeFile(t, dir, "Mascarilla Reparadora.webp", "RIFF....WEBP")

	out, err := run(t, "upload", img, "--prefix", "productos")
	require.NoError(t, err)
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "/uploads/productos/mascarilla-reparadora.webp")

	_, err = os.Stat(filepath.Join(dir, "uploads", "productos", "mascarilla-reparadora.webp"))
	assert.NoError(t, err)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("LOCAL_UPLOAD_DIR", dir)
	file := writeFile(t, dir, "notas.txt", "hola")

	_, err := run(t, "upload", file, "-q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
}
