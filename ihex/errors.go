package ihex

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package matches one of
// these with errors.Is.
var (
	ErrFileOpen         = errors.New("cannot open hex file")
	ErrUnknownFormat    = errors.New("unknown hex file type")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrLengthMismatch   = errors.New("record length mismatch")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrIO               = errors.New("hex file i/o error")
	ErrWrongMode        = errors.New("operation not allowed in this mode")
	ErrClosed           = errors.New("hex file is closed")
	ErrMissingEndRecord = errors.New("no end of file record")
	ErrOverlap          = errors.New("data overlap")
)

// FileOpenError indicates that the underlying file could not be opened.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

func (e *FileOpenError) Is(target error) bool { return target == ErrFileOpen }

// MalformedRecordError indicates a syntax violation in a record line:
// a missing start code, invalid hex digits or an unknown record type.
type MalformedRecordError struct {
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed record: %s", e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// LengthMismatchError indicates that the declared byte count does not
// agree with the number of data bytes present on the line.
type LengthMismatchError struct {
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("record length mismatch: byte count declares %d data bytes, line carries %d",
		e.Declared, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// ChecksumMismatchError indicates that a record's checksum does not balance.
type ChecksumMismatchError struct {
	Expected byte
	Actual   byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%02X, got 0x%02X", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool { return target == ErrChecksumMismatch }

// IOError indicates a failure of the underlying file handle.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// OverlapError indicates that two data records cover the same address.
type OverlapError struct {
	Address uint32
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("data overlap at address 0x%08X", e.Address)
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }
