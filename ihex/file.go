package ihex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Mode is the access mode of a File. It is fixed when the File is created.
type Mode int

const (
	// ModeRead allows Next and Records
	ModeRead Mode = iota + 1

	// ModeWrite allows Write
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type state int

const (
	stateOpen state = iota
	stateEnd
	stateErrored
)

// File is a session over one Intel HEX file, bound to a single mode and
// address width for its whole lifetime.
//
// A File owns its handle and closes it exactly once: when a read session
// reaches its end, when any session fails, or on Close, whichever comes
// first. Callers should still defer Close.
//
// File is not safe for concurrent use.
type File struct {
	mode   Mode
	codec  Codec
	config Config

	closer io.Closer
	reader *bufio.Reader
	writer io.Writer

	state    state
	err      error
	closed   bool
	closeErr error

	line       int
	records    int
	bytesRead  int64
	totalBytes int64
}

// NewReader creates a read session over an already open handle positioned
// at the start of the file.
//
// Example:
//
//	fh, _ := os.Open("firmware.hex")
//	f := ihex.NewReader(fh, ihex.Width16)
//	defer f.Close()
func NewReader(rc io.ReadCloser, v Variant, opts ...Option) *File {
	if rc == nil {
		panic("reader cannot be nil")
	}
	f := newFile(ModeRead, v, rc, opts)
	f.reader = bufio.NewReader(rc)
	return f
}

// NewWriter creates a write session over an already open handle.
//
// Example:
//
//	fh, _ := os.Create("out.hex")
//	f := ihex.NewWriter(fh, ihex.Width32)
//	defer f.Close()
func NewWriter(wc io.WriteCloser, v Variant, opts ...Option) *File {
	if wc == nil {
		panic("writer cannot be nil")
	}
	f := newFile(ModeWrite, v, wc, opts)
	f.writer = wc
	return f
}

// Create creates or truncates the named file and returns a write session.
func Create(path string, v Variant, opts ...Option) (*File, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("create %s: invalid variant %d", path, int(v))
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	return NewWriter(fh, v, opts...), nil
}

func newFile(mode Mode, v Variant, c io.Closer, opts []Option) *File {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &File{
		mode:   mode,
		codec:  NewCodec(v),
		config: cfg,
		closer: c,
	}
}

// Mode returns the access mode of the session.
func (f *File) Mode() Mode { return f.mode }

// Variant returns the address width of the session.
func (f *File) Variant() Variant { return f.codec.Variant() }

// Line returns the number of lines read or written so far.
func (f *File) Line() int { return f.line }

// Next reads and decodes the next record.
//
// It returns io.EOF once an EndOfFile record has been returned or the file
// is exhausted, and keeps returning io.EOF afterwards. Blank lines are
// skipped. Any decode or read failure is returned with the line number
// prefixed, and every later call returns the same error.
func (f *File) Next() (*Record, error) {
	if f.mode != ModeRead {
		return nil, fmt.Errorf("next record: %w", ErrWrongMode)
	}

	switch f.state {
	case stateEnd:
		return nil, io.EOF
	case stateErrored:
		return nil, f.err
	}
	if f.closed {
		return nil, ErrClosed
	}

	for {
		text, err := f.reader.ReadString('\n')
		f.bytesRead += int64(len(text))
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, f.fail(&IOError{Op: fmt.Sprintf("read line %d", f.line+1), Err: err})
		}
		if text == "" {
			return nil, f.finish()
		}

		f.line++
		if strings.TrimSpace(text) == "" {
			if err != nil {
				return nil, f.finish()
			}
			continue
		}

		rec, decErr := f.codec.Decode(text)
		if decErr != nil {
			return nil, f.fail(fmt.Errorf("line %d: %w", f.line, decErr))
		}

		f.records++
		f.reportProgress()

		if rec.Type == EndOfFile {
			f.state = stateEnd
			f.logDebug("end of file record", "line", f.line, "records", f.records)
			f.release()
		}

		return rec, nil
	}
}

// Records returns an iterator over the remaining records.
// Iteration stops after the first error, which is yielded.
//
// Example:
//
//	for rec, err := range f.Records() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec)
//	}
func (f *File) Records() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			rec, err := f.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Write encodes a record and appends it to the file.
//
// Records are written in the order given; the caller is responsible for
// finishing the file with an EndOfFile record. A record that cannot be
// encoded is rejected without affecting the session. A failed write is
// returned as *IOError and ends the session.
func (f *File) Write(r *Record) error {
	if f.mode != ModeWrite {
		return fmt.Errorf("write record: %w", ErrWrongMode)
	}
	if f.state == stateErrored {
		return f.err
	}
	if f.closed {
		return ErrClosed
	}

	line, err := f.codec.Encode(r)
	if err != nil {
		return fmt.Errorf("encode record %d: %w", f.records+1, err)
	}

	if _, err := io.WriteString(f.writer, line); err != nil {
		return f.fail(&IOError{Op: fmt.Sprintf("write line %d", f.line+1), Err: err})
	}

	f.line++
	f.records++

	return nil
}

// Close releases the file handle if it is still held.
// It is safe to call Close more than once.
func (f *File) Close() error {
	if f.closed {
		return f.closeErr
	}
	f.release()
	f.closed = true
	return f.closeErr
}

// finish handles the end of input without an EndOfFile record.
func (f *File) finish() error {
	if f.config.RequireEndRecord {
		return f.fail(fmt.Errorf("line %d: %w", f.line, ErrMissingEndRecord))
	}
	f.state = stateEnd
	f.logDebug("end of input", "line", f.line, "records", f.records)
	f.release()
	return io.EOF
}

// fail moves the session into its terminal error state.
func (f *File) fail(err error) error {
	f.state = stateErrored
	f.err = err
	f.logError("hex file session failed", "mode", f.mode.String(), "error", err)
	f.release()
	return err
}

// release closes the handle exactly once.
func (f *File) release() {
	if f.closer == nil {
		return
	}
	if err := f.closer.Close(); err != nil {
		f.closeErr = &IOError{Op: "close", Err: err}
		f.logError("close failed", "error", err)
	}
	f.closer = nil
	f.closed = true
}

// reportProgress calls the progress callback if configured.
func (f *File) reportProgress() {
	if f.config.ProgressCallback == nil {
		return
	}
	p := Progress{
		Records:    f.records,
		BytesRead:  f.bytesRead,
		TotalBytes: f.totalBytes,
	}
	if f.totalBytes > 0 {
		p.Percentage = float64(f.bytesRead) / float64(f.totalBytes) * 100
	}
	f.config.ProgressCallback(p)
}

// logDebug logs a debug message if a logger is configured.
func (f *File) logDebug(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (f *File) logInfo(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (f *File) logError(msg string, keysAndValues ...interface{}) {
	if f.config.Logger != nil {
		f.config.Logger.Error(msg, keysAndValues...)
	}
}
