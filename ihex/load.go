package ihex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load opens an Intel HEX file, detects its address width from the first
// line and returns a read session positioned at the first record.
//
// The whole first line is read before detection, however long it is.
// On any failure the file is closed before the error is returned.
//
// Example:
//
//	f, err := ihex.Load("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	for rec, err := range f.Records() {
//	    ...
//	}
func Load(path string, opts ...Option) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}

	v, err := sniff(fh)
	if err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	f := NewReader(fh, v, opts...)
	if info, err := fh.Stat(); err == nil {
		f.totalBytes = info.Size()
	}

	f.logInfo("loaded hex file", "path", path, "variant", v.String(), "size", f.totalBytes)

	return f, nil
}

// ReadFile loads the named file and reads all of its records.
//
// Example:
//
//	records, variant, err := ihex.ReadFile("firmware.hex")
func ReadFile(path string, opts ...Option) ([]*Record, Variant, error) {
	f, err := Load(path, opts...)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = f.Close() }()

	var records []*Record
	for rec, err := range f.Records() {
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, rec)
	}

	return records, f.Variant(), nil
}

// sniff detects the variant from the first line and rewinds rs to the start.
func sniff(rs io.ReadSeeker) (Variant, error) {
	first, err := bufio.NewReader(rs).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, &IOError{Op: "read first line", Err: err}
	}

	v, err := Detect(first)
	if err != nil {
		return 0, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, &IOError{Op: "rewind", Err: err}
	}

	return v, nil
}

// Detect determines the address width of a record line.
//
// The number of hex digits after the start code must equal
//
//	ByteCount(2) + Address(4 or 8) + RecordType(2) + 2*count + Checksum(2)
//
// where count is the value of the byte count field. A line that fits
// neither width fails with ErrUnknownFormat. Trailing whitespace, including
// a CR of a CRLF terminator, is ignored. Detect does not validate the
// remaining digits; decoding the record does that.
func Detect(line string) (Variant, error) {
	line = strings.TrimRight(line, trailingSpace)
	if len(line) < 1+byteCountDigits || line[0] != StartCode {
		return 0, fmt.Errorf("%w: first line is not a record", ErrUnknownFormat)
	}

	count, err := strconv.ParseUint(line[1:1+byteCountDigits], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid byte count %q", ErrUnknownFormat, line[1:1+byteCountDigits])
	}

	digits := len(line) - 1
	for _, v := range []Variant{Width16, Width32} {
		if digits == v.LineDigits(int(count)) {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: %d hex digits do not fit a record of %d data bytes",
		ErrUnknownFormat, digits, count)
}
