package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryDebugSink(t *testing.T) {
	sink := &MemoryDebugSink{}
	sink.Write("metadata", `{"title": "Tokyo"}`)
	sink.Write("days_1_3", "[]")

	require.Len(t, sink.Entries, 2)
	assert.Equal(t, "metadata", sink.Entries[0].Kind)
	assert.Equal(t, "days_1_3", sink.Entries[1].Kind)
}

func TestFileDebugSink(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileDebugSink(dir, zap.NewNop())

	t.Run("pretty prints parseable JSON", func(t *testing.T) {
		sink.Write("metadata", "```json\n{\"title\":\"Tokyo\",\"total_days\":3}\n```")

		files, err := filepath.Glob(filepath.Join(dir, "metadata_*.json"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		content, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Contains(t, string(content), "  \"title\": \"Tokyo\"")
	})

	t.Run("keeps unparseable content verbatim", func(t *testing.T) {
		sink.Write("raw", "not json at all")

		files, err := filepath.Glob(filepath.Join(dir, "raw_*.json"))
		require.NoError(t, err)
		require.Len(t, files, 1)

		content, err := os.ReadFile(files[0])
		require.NoError(t, err)
		assert.Equal(t, "not json at all", strings.TrimSpace(string(content)))
	})
}
