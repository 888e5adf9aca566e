package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DonovanMods/modkit/internal/domain"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Zip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.zip")
	createZip(t, path, "Mod/", "Mod/Cool.pak", "Mod/Sub/readme.txt")
	dest := t.TempDir()

	require.NoError(t, NewLister().Extract(context.Background(), path, dest))

	content, err := os.ReadFile(filepath.Join(dest, "Mod", "Cool.pak"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
	assert.FileExists(t, filepath.Join(dest, "Mod", "Sub", "readme.txt"))
}

func TestExtract_ZipSlip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.zip")
	createZip(t, path, "Mod/Cool.pak", "../evil.pak")
	dest := filepath.Join(t.TempDir(), "out")

	err := NewLister().Extract(context.Background(), path, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "evil.pak"))
}

func TestExtract_TarGz(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	writeTar(t, gz, "Pack/", "Pack/a.pak")
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	dest := t.TempDir()

	require.NoError(t, NewLister().Extract(context.Background(), path, dest))

	content, err := os.ReadFile(filepath.Join(dest, "Pack", "a.pak"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestExtract_Unsupported(t *testing.T) {
	err := NewLister().Extract(context.Background(), "mod.exe", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnsupportedArchive)
}

func TestExtract_Canceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mod.zip")
	createZip(t, path, "Mod/Cool.pak")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewLister().Extract(ctx, path, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_7zMissingBinary(t *testing.T) {
	l := &Lister{sevenZip: "definitely-not-a-real-7z-binary"}
	err := l.Extract(context.Background(), "mod.rar", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "7z command not found")
}
