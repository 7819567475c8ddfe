package ihex

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// :BB AAAA TT DD.. CC
	lineScenarioA = ":0300300002337A1E"
	lineEOF16     = ":00000001FF"
	lineWiki16    = ":10010000214601360121470136007EFE09D2190140"
	line32        = ":011234567800AB40"
	lineEOF32     = ":000000000001FF"
)

// readCloser counts Close calls on a reader.
type readCloser struct {
	io.Reader
	closes int
}

func newReadCloser(s string) *readCloser {
	return &readCloser{Reader: strings.NewReader(s)}
}

func (r *readCloser) Close() error {
	r.closes++
	return nil
}

// bufferCloser collects written data and counts Close calls.
type bufferCloser struct {
	strings.Builder
	closes int
}

func (b *bufferCloser) Close() error {
	b.closes++
	return nil
}

// failingWriter fails every write.
type failingWriter struct {
	err    error
	closes int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func (w *failingWriter) Close() error {
	w.closes++
	return nil
}

// MockLogger records logged messages.
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.hex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}
