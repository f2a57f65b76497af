package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// DebugSink receives every raw model response before parsing. Writes are
// fire-and-forget: a sink failure must never block or fail a generation call.
type DebugSink interface {
	Write(kind string, content string)
}

// FileDebugSink writes responses under a debug directory, pretty-printed when
// the content is parseable JSON, verbatim otherwise.
type FileDebugSink struct {
	dir    string
	logger *zap.Logger
}

func NewFileDebugSink(dir string, logger *zap.Logger) *FileDebugSink {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("debug directory unavailable", zap.String("dir", dir), zap.Error(err))
	}
	return &FileDebugSink{dir: dir, logger: logger}
}

func (s *FileDebugSink) Write(kind string, content string) {
	out := content
	var parsed any
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &parsed); err == nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(parsed); err == nil {
			out = buf.String()
		}
	}

	name := fmt.Sprintf("%s_%s.json", kind, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		s.logger.Warn("failed to save debug response", zap.String("file", path), zap.Error(err))
	}
}

// NoopDebugSink discards everything. Used when debugging is disabled and in tests.
type NoopDebugSink struct{}

func (NoopDebugSink) Write(string, string) {}

// MemoryDebugSink keeps responses in memory for test inspection.
type MemoryDebugSink struct {
	Entries []MemoryDebugEntry
}

type MemoryDebugEntry struct {
	Kind    string
	Content string
}

func (s *MemoryDebugSink) Write(kind string, content string) {
	s.Entries = append(s.Entries, MemoryDebugEntry{Kind: kind, Content: content})
}
