package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOSProvider_Roots(t *testing.T) {
	tmpDir := t.TempDir()

	p := NewOSProvider(tmpDir, "")
	roots, err := p.Roots()
	require.NoError(t, err)
	assert.Equal(t, []string{tmpDir}, roots)

	host, err := NewOSProvider().Roots()
	require.NoError(t, err)
	assert.NotEmpty(t, host)
	for _, r := range host {
		assert.True(t, filepath.IsAbs(r), "root %q should be absolute", r)
	}
}

func TestReadDir(t *testing.T) {
	tmpDir := t.TempDir()

	dirs := []string{"dir1", "dir2", ".hidden_dir"}
	files := []string{"file1.txt", "file2.go", ".hidden_file"}
	for _, d := range dirs {
		require.NoError(t, os.Mkdir(filepath.Join(tmpDir, d), 0o755))
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, f), []byte("test content"), 0o644))
	}
	// Nested entries must not be returned.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dir1", "nested.txt"), []byte("nested"), 0o644))

	entries, err := NewOSProvider().ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, len(dirs)+len(files))

	byName := make(map[string]DirEntry)
	for i, e := range entries {
		byName[e.Name] = e
		if i > 0 {
			assert.Less(t, entries[i-1].Name, e.Name, "entries should be sorted")
		}
	}
	for _, d := range dirs {
		assert.Equal(t, TypeDir, byName[d].Type, d)
		assert.Equal(t, filepath.Join(tmpDir, d), byName[d].Path)
	}
	for _, f := range files {
		assert.Equal(t, TypeFile, byName[f].Type, f)
	}
	assert.NotContains(t, byName, "nested.txt")
}

func TestReadDir_NonExistent(t *testing.T) {
	_, err := NewOSProvider().ReadDir("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
}

func TestReadDir_Symlinks(t *testing.T) {
	tmpDir := t.TempDir()

	realDir := filepath.Join(tmpDir, "realdir")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "inside.txt"), []byte("x"), 0o644))
	realFile := filepath.Join(tmpDir, "realfile.txt")
	require.NoError(t, os.WriteFile(realFile, []byte("real content"), 0o644))

	if err := os.Symlink(realDir, filepath.Join(tmpDir, "linkdir")); err != nil {
		t.Skipf("cannot create symlinks: %v", err)
	}
	require.NoError(t, os.Symlink(realFile, filepath.Join(tmpDir, "linkfile.txt")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), filepath.Join(tmpDir, "broken")))

	p := NewOSProvider()
	entries, err := p.ReadDir(tmpDir)
	require.NoError(t, err)

	byName := make(map[string]DirEntry)
	for _, e := range entries {
		byName[e.Name] = e
	}
	require.Len(t, byName, 5)
	assert.Equal(t, TypeDir, byName["linkdir"].Type, "symlink to directory resolves to its target")
	assert.Equal(t, TypeFile, byName["linkfile.txt"].Type)
	assert.Equal(t, TypeOther, byName["broken"].Type)
	assert.NotContains(t, byName, "inside.txt", "symlinks must not be traversed")

	isLink, err := p.IsSymlink(filepath.Join(tmpDir, "linkdir"))
	require.NoError(t, err)
	assert.True(t, isLink)

	isLink, err = p.IsSymlink(realDir)
	require.NoError(t, err)
	assert.False(t, isLink)

	_, err = p.IsSymlink(filepath.Join(tmpDir, "missing"))
	assert.Error(t, err)
}

func TestIsEmptyDir(t *testing.T) {
	tmpDir := t.TempDir()
	empty := filepath.Join(tmpDir, "empty")
	full := filepath.Join(tmpDir, "full")
	require.NoError(t, os.Mkdir(empty, 0o755))
	require.NoError(t, os.Mkdir(full, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(full, "a"), nil, 0o644))

	p := NewOSProvider()

	got, err := p.IsEmptyDir(empty)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = p.IsEmptyDir(full)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = p.IsEmptyDir(filepath.Join(full, "a"))
	require.NoError(t, err)
	assert.False(t, got, "a file is not an empty directory")
}

func TestExistsAndReadable(t *testing.T) {
	tmpDir := t.TempDir()
	p := NewOSProvider()

	assert.True(t, p.Exists(tmpDir))
	assert.True(t, p.IsReadable(tmpDir))
	assert.False(t, p.Exists(filepath.Join(tmpDir, "missing")))
	assert.False(t, p.IsReadable(filepath.Join(tmpDir, "missing")))
}

func TestAttributes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.txt")
	content := []byte("hello world")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	attrs, err := NewOSProvider().Attributes(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), attrs.Size)
	assert.False(t, attrs.Modified.IsZero())

	_, err = NewOSProvider().Attributes(filepath.Join(tmpDir, "missing"))
	assert.Error(t, err)
}

func BenchmarkReadDir(b *testing.B) {
	tmpDir := b.TempDir()
	for i := 0; i < 100; i++ {
		name := filepath.Join(tmpDir, "file"+string(rune('0'+i%10))+string(rune('0'+i/10%10))+".txt")
		os.WriteFile(name, []byte("content"), 0o644)
	}

	p := NewOSProvider()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ReadDir(tmpDir)
	}
}
