package ihex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// LineTerminator ends every line produced by Encode.
const LineTerminator = "\n"

// trailingSpace lists the characters ignored at the end of a record line.
const trailingSpace = " \t\r\n"

// Codec converts between record lines and Records for one address width.
//
// A Codec is a small value and is safe for concurrent use.
type Codec struct {
	variant Variant
}

// NewCodec returns a Codec for the given variant.
// It panics if v is not Width16 or Width32.
func NewCodec(v Variant) Codec {
	if !v.Valid() {
		panic(fmt.Sprintf("ihex: invalid variant %d", int(v)))
	}
	return Codec{variant: v}
}

// Variant returns the address width the codec was built for.
func (c Codec) Variant() Variant {
	return c.variant
}

// Decode parses one record line.
//
// Line format (digits after the start code):
//
//	[ByteCount(2)][Address(4 or 8)][RecordType(2)][Data(2*ByteCount)][Checksum(2)]
//
// Trailing whitespace, including a CR of a CRLF terminator, is ignored.
// Decode returns either a fully validated record or an error matching
// ErrMalformedRecord, ErrLengthMismatch or ErrChecksumMismatch.
//
// Example:
//
//	rec, err := ihex.NewCodec(ihex.Width16).Decode(":0300300002337A1E")
//	// rec.Type == ihex.Data, rec.Address == 0x0030
func (c Codec) Decode(line string) (*Record, error) {
	line = strings.TrimRight(line, trailingSpace)
	if line == "" {
		return nil, &MalformedRecordError{Reason: "empty line"}
	}
	if line[0] != StartCode {
		return nil, &MalformedRecordError{Reason: fmt.Sprintf("line must start with %q", StartCode)}
	}

	body := line[1:]
	if len(body)%2 != 0 {
		return nil, &MalformedRecordError{Reason: fmt.Sprintf("odd number of hex digits (%d)", len(body))}
	}

	raw, err := hex.DecodeString(body)
	if err != nil {
		return nil, &MalformedRecordError{Reason: "invalid hex data", Err: err}
	}

	addrBytes := c.variant.addressBytes()
	headerSize := 1 + addrBytes + 1 // count + address + type

	if len(raw) < headerSize+1 {
		declared := 0
		if len(raw) > 0 {
			declared = int(raw[0])
		}
		return nil, &LengthMismatchError{Declared: declared, Actual: 0}
	}

	// The balance check covers every byte on the line, so it runs before
	// the byte count is trusted.
	if !balanced(raw) {
		return nil, &ChecksumMismatchError{
			Expected: CalculateChecksum(raw[:len(raw)-1]),
			Actual:   raw[len(raw)-1],
		}
	}

	count := int(raw[0])
	present := len(raw) - headerSize - 1
	if count != present {
		return nil, &LengthMismatchError{Declared: count, Actual: present}
	}

	typ := RecordType(raw[headerSize-1])
	if !typ.Known() {
		return nil, &MalformedRecordError{Reason: fmt.Sprintf("unknown record type 0x%02X", byte(typ))}
	}
	if typ == EndOfFile && count != 0 {
		return nil, &MalformedRecordError{Reason: "end of file record carries data"}
	}

	var address uint32
	for _, b := range raw[1 : 1+addrBytes] {
		address = address<<8 | uint32(b)
	}

	rec := &Record{
		Type:     typ,
		Address:  address,
		Data:     make([]byte, count),
		Checksum: raw[len(raw)-1],
	}
	copy(rec.Data, raw[headerSize:headerSize+count])

	return rec, nil
}

// Encode renders a record as a canonical line: uppercase hex, the address
// zero-padded to the variant width, and a trailing LineTerminator.
//
// The checksum is always computed; r.Checksum is ignored.
func (c Codec) Encode(r *Record) (string, error) {
	if r == nil {
		return "", &MalformedRecordError{Reason: "nil record"}
	}
	if len(r.Data) > MaxDataLength {
		return "", &MalformedRecordError{
			Reason: fmt.Sprintf("data too long: %d bytes, maximum is %d", len(r.Data), MaxDataLength),
		}
	}
	if r.Address > c.variant.MaxAddress() {
		return "", &MalformedRecordError{
			Reason: fmt.Sprintf("address 0x%X does not fit the %s address field", r.Address, c.variant),
		}
	}
	if !r.Type.Known() {
		return "", &MalformedRecordError{Reason: fmt.Sprintf("unknown record type 0x%02X", byte(r.Type))}
	}
	if r.Type == EndOfFile && len(r.Data) != 0 {
		return "", &MalformedRecordError{Reason: "end of file record carries data"}
	}

	raw := r.fields(c.variant)
	raw = append(raw, CalculateChecksum(raw))

	var sb strings.Builder
	sb.Grow(1 + hex.EncodedLen(len(raw)) + len(LineTerminator))
	sb.WriteByte(StartCode)
	sb.WriteString(strings.ToUpper(hex.EncodeToString(raw)))
	sb.WriteString(LineTerminator)

	return sb.String(), nil
}
