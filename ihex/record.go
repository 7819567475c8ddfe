package ihex

import "fmt"

// RecordType identifies the kind of an Intel HEX record.
type RecordType byte

// Record types defined by the Intel HEX format.
const (
	// Data carries data bytes at the record address
	Data RecordType = 0x00

	// EndOfFile terminates the file and carries no data
	EndOfFile RecordType = 0x01

	// ExtendedSegmentAddress sets bits 4-19 of subsequent data addresses
	ExtendedSegmentAddress RecordType = 0x02

	// StartSegmentAddress holds the CS:IP start address
	StartSegmentAddress RecordType = 0x03

	// ExtendedLinearAddress sets the upper 16 bits of subsequent data addresses
	ExtendedLinearAddress RecordType = 0x04

	// StartLinearAddress holds the 32-bit start address
	StartLinearAddress RecordType = 0x05
)

// Known reports whether t is one of the six defined record types.
func (t RecordType) Known() bool {
	return t <= StartLinearAddress
}

func (t RecordType) String() string {
	switch t {
	case Data:
		return "data"
	case EndOfFile:
		return "end of file"
	case ExtendedSegmentAddress:
		return "extended segment address"
	case StartSegmentAddress:
		return "start segment address"
	case ExtendedLinearAddress:
		return "extended linear address"
	case StartLinearAddress:
		return "start linear address"
	default:
		return fmt.Sprintf("unknown (0x%02X)", byte(t))
	}
}

// MaxDataLength is the largest number of data bytes a record can carry.
const MaxDataLength = 0xFF

// Record represents a single line of an Intel HEX file.
type Record struct {
	// Type is the record type
	Type RecordType

	// Address is the load address for Data records. For other record
	// types it holds whatever the address field carried (usually zero).
	Address uint32

	// Data holds the record payload
	Data []byte

	// Checksum is the checksum byte as read from the file
	Checksum byte
}

// NewRecord builds a record and fills in its checksum for the given variant.
//
// Example:
//
//	r := ihex.NewRecord(ihex.Data, 0x0030, []byte{0x02, 0x33, 0x7A}, ihex.Width16)
//	// r.Checksum == 0x1E
func NewRecord(typ RecordType, address uint32, data []byte, v Variant) *Record {
	r := &Record{
		Type:    typ,
		Address: address,
		Data:    data,
	}
	r.Checksum = r.checksum(v)
	return r
}

// ByteCount returns the byte count field of the record.
func (r *Record) ByteCount() byte {
	return byte(len(r.Data))
}

// Valid reports whether the stored checksum balances the record under v.
func (r *Record) Valid(v Variant) bool {
	return r.checksum(v) == r.Checksum
}

// End reports whether r terminates the file.
func (r *Record) End() bool {
	return r.Type == EndOfFile
}

// checksum computes the checksum over the record fields as they would be
// laid out on a line of variant v.
func (r *Record) checksum(v Variant) byte {
	return CalculateChecksum(r.fields(v))
}

// fields returns the binary form of the record without the checksum byte.
func (r *Record) fields(v Variant) []byte {
	n := v.addressBytes()
	buf := make([]byte, 0, 2+n+len(r.Data))
	buf = append(buf, r.ByteCount())
	for i := n - 1; i >= 0; i-- {
		buf = append(buf, byte(r.Address>>(8*i)))
	}
	buf = append(buf, byte(r.Type))
	buf = append(buf, r.Data...)
	return buf
}

func (r *Record) String() string {
	return fmt.Sprintf("%s @0x%X len=%d", r.Type, r.Address, len(r.Data))
}
