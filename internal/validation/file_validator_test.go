package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkbook(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	good := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(good, []byte("content"), 0644))
	assert.NoError(t, v.ValidateWorkbook(good))

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateWorkbook(filepath.Join(dir, "absent.xlsx"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		err := v.ValidateWorkbook(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.xlsx")
		require.NoError(t, os.WriteFile(empty, nil, 0644))
		err := v.ValidateWorkbook(empty)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("wrong extension", func(t *testing.T) {
		csv := filepath.Join(dir, "data.csv")
		require.NoError(t, os.WriteFile(csv, []byte("a,b"), 0644))
		err := v.ValidateWorkbook(csv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extension")
	})
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	v := NewFileValidator(nil)

	t.Run("creates missing parent", func(t *testing.T) {
		out := filepath.Join(dir, "nested", "deep", "out.csv")
		require.NoError(t, v.ValidateOutputPath(out))
		info, err := os.Stat(filepath.Dir(out))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects directory target", func(t *testing.T) {
		err := v.ValidateOutputPath(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})

	t.Run("rejects empty path", func(t *testing.T) {
		require.Error(t, v.ValidateOutputPath(""))
	})
}
