package ihex

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "file open",
			err:  &FileOpenError{Path: "fw.hex", Err: fs.ErrNotExist},
			want: []string{"open fw.hex", "not exist"},
		},
		{
			name: "malformed",
			err:  &MalformedRecordError{Reason: "invalid hex data"},
			want: []string{"malformed record", "invalid hex data"},
		},
		{
			name: "length mismatch",
			err:  &LengthMismatchError{Declared: 16, Actual: 4},
			want: []string{"declares 16", "carries 4"},
		},
		{
			name: "checksum mismatch",
			err:  &ChecksumMismatchError{Expected: 0xAB, Actual: 0xCD},
			want: []string{"checksum mismatch", "0xAB", "0xCD"},
		},
		{
			name: "io",
			err:  &IOError{Op: "write line 3", Err: errors.New("disk full")},
			want: []string{"write line 3", "disk full"},
		},
		{
			name: "overlap",
			err:  &OverlapError{Address: 0x1000},
			want: []string{"overlap", "0x00001000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.want {
				assert.Contains(t, tt.err.Error(), s)
			}
		})
	}
}

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		err    error
		target error
	}{
		{&FileOpenError{Err: fs.ErrPermission}, ErrFileOpen},
		{&FileOpenError{Err: fs.ErrPermission}, fs.ErrPermission},
		{&MalformedRecordError{}, ErrMalformedRecord},
		{&LengthMismatchError{}, ErrLengthMismatch},
		{&ChecksumMismatchError{}, ErrChecksumMismatch},
		{&IOError{Err: fs.ErrClosed}, ErrIO},
		{&IOError{Err: fs.ErrClosed}, fs.ErrClosed},
		{&OverlapError{}, ErrOverlap},
	}

	for _, tt := range tests {
		assert.ErrorIs(t, tt.err, tt.target)
	}

	assert.NotErrorIs(t, &ChecksumMismatchError{}, ErrLengthMismatch)
	assert.NotErrorIs(t, &MalformedRecordError{}, ErrChecksumMismatch)
}

func TestErrorTypes(t *testing.T) {
	var _ error = &FileOpenError{}
	var _ error = &MalformedRecordError{}
	var _ error = &LengthMismatchError{}
	var _ error = &ChecksumMismatchError{}
	var _ error = &IOError{}
	var _ error = &OverlapError{}
}
