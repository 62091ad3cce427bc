package commands

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("  alpha\tbeta\n\ngamma  delta\r\nпривет 日本語\n"), 0o644))

	words, err := loadWords(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta", "привет", "日本語"}, words)
}

func TestLoadWords_Progress(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b c\n"), 0o644))

	var progress bytes.Buffer
	words, err := loadWords(path, &progress)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, words)
	assert.NotZero(t, progress.Len())
}

func TestLoadWords_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadWords(filepath.Join(dir, "missing.txt"), nil)
	require.ErrorIs(t, err, fs.ErrNotExist)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte(" \n\t\n"), 0o644))
	_, err = loadWords(empty, nil)
	require.ErrorContains(t, err, "为空")
}
