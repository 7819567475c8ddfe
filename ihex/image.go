package ihex

import (
	"fmt"
	"slices"
)

// DefaultLineLength is the number of data bytes per record used by
// WriteImage when no length is given.
const DefaultLineLength = 16

// Segment is a contiguous run of data bytes.
type Segment struct {
	Address uint32
	Data    []byte
}

// End returns the address one past the last byte of the segment.
func (s Segment) End() uint64 {
	return uint64(s.Address) + uint64(len(s.Data))
}

// Image is the memory image described by a sequence of records.
// Segments are sorted by address, never overlap and never touch:
// adjacent data is merged into one segment.
type Image struct {
	Segments []Segment

	// Start is the execution start address, valid when HasStart is set
	Start    uint32
	HasStart bool
}

// BuildImage folds records into a memory image.
//
// Data record addresses are offset by the most recent extended linear
// address (upper 16 bits) or extended segment address (base * 16) record.
// Start address records set Start. Records after an EndOfFile record are
// ignored.
//
// Example:
//
//	records, _, err := ihex.ReadFile("firmware.hex")
//	img, err := ihex.BuildImage(records)
//	bin := img.Bytes(0x0000, 0x8000, 0xFF)
func BuildImage(records []*Record) (*Image, error) {
	img := &Image{}
	var base uint32

	for i, rec := range records {
		switch rec.Type {
		case Data:
			if err := img.Add(base+rec.Address, rec.Data); err != nil {
				return nil, fmt.Errorf("record %d: %w", i+1, err)
			}

		case ExtendedLinearAddress:
			if len(rec.Data) != 2 {
				return nil, fmt.Errorf("record %d: %w", i+1, payloadError(rec, 2))
			}
			base = uint32(rec.Data[0])<<24 | uint32(rec.Data[1])<<16

		case ExtendedSegmentAddress:
			if len(rec.Data) != 2 {
				return nil, fmt.Errorf("record %d: %w", i+1, payloadError(rec, 2))
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 4

		case StartLinearAddress:
			if len(rec.Data) != 4 {
				return nil, fmt.Errorf("record %d: %w", i+1, payloadError(rec, 4))
			}
			img.Start = uint32(rec.Data[0])<<24 | uint32(rec.Data[1])<<16 |
				uint32(rec.Data[2])<<8 | uint32(rec.Data[3])
			img.HasStart = true

		case StartSegmentAddress:
			if len(rec.Data) != 4 {
				return nil, fmt.Errorf("record %d: %w", i+1, payloadError(rec, 4))
			}
			cs := uint32(rec.Data[0])<<8 | uint32(rec.Data[1])
			ip := uint32(rec.Data[2])<<8 | uint32(rec.Data[3])
			img.Start = cs<<4 + ip
			img.HasStart = true

		case EndOfFile:
			return img, nil
		}
	}

	return img, nil
}

func payloadError(rec *Record, want int) error {
	return &MalformedRecordError{
		Reason: fmt.Sprintf("%s record must carry %d bytes, got %d", rec.Type, want, len(rec.Data)),
	}
}

// Add places data at address, merging it with adjacent segments.
// Data overlapping an existing segment fails with *OverlapError.
func (img *Image) Add(address uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	end := uint64(address) + uint64(len(data))
	if end > 1<<32 {
		return fmt.Errorf("%d bytes at 0x%08X exceed the 32-bit address space", len(data), address)
	}

	for _, s := range img.Segments {
		if uint64(address) < s.End() && end > uint64(s.Address) {
			return &OverlapError{Address: max(address, s.Address)}
		}
	}

	img.Segments = append(img.Segments, Segment{
		Address: address,
		Data:    slices.Clone(data),
	})
	slices.SortFunc(img.Segments, func(a, b Segment) int {
		switch {
		case a.Address < b.Address:
			return -1
		case a.Address > b.Address:
			return 1
		}
		return 0
	})

	merged := make([]Segment, 0, len(img.Segments))
	for _, s := range img.Segments {
		if n := len(merged); n > 0 && merged[n-1].End() == uint64(s.Address) {
			merged[n-1].Data = append(merged[n-1].Data, s.Data...)
			continue
		}
		merged = append(merged, s)
	}
	img.Segments = merged

	return nil
}

// Size returns the number of data bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// Bounds returns the lowest address and the address one past the highest
// byte of the image. Both are zero for an empty image.
func (img *Image) Bounds() (low uint32, high uint64) {
	if len(img.Segments) == 0 {
		return 0, 0
	}
	return img.Segments[0].Address, img.Segments[len(img.Segments)-1].End()
}

// Bytes renders size bytes starting at address, filling gaps with pad.
func (img *Image) Bytes(address uint32, size uint32, pad byte) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = pad
	}

	start := uint64(address)
	stop := start + uint64(size)
	for _, s := range img.Segments {
		lo := max(start, uint64(s.Address))
		hi := min(stop, s.End())
		if lo >= hi {
			continue
		}
		copy(out[lo-start:hi-start], s.Data[lo-uint64(s.Address):hi-uint64(s.Address)])
	}

	return out
}

// WriteImage writes img through a write session: data records of at most
// lineLength bytes, a start address record if the image has one, and a
// closing EndOfFile record. Width16 sessions get an extended linear
// address record whenever the data crosses into another 64 KiB page.
//
// A lineLength of 0 selects DefaultLineLength.
func WriteImage(f *File, img *Image, lineLength int) error {
	if lineLength == 0 {
		lineLength = DefaultLineLength
	}
	if lineLength < 1 || lineLength > MaxDataLength {
		return fmt.Errorf("line length %d out of range 1-%d", lineLength, MaxDataLength)
	}

	v := f.Variant()
	var page uint32

	for _, s := range img.Segments {
		data := s.Data
		addr := s.Address

		for len(data) > 0 {
			n := min(lineLength, len(data))
			recAddr := addr

			if v == Width16 {
				if upper := addr &^ 0xFFFF; upper != page {
					ela := NewRecord(ExtendedLinearAddress, 0, []byte{byte(upper >> 24), byte(upper >> 16)}, v)
					if err := f.Write(ela); err != nil {
						return err
					}
					page = upper
				}
				// a record never crosses a 64 KiB page boundary
				n = min(n, int(0x10000-(addr&0xFFFF)))
				recAddr = addr & 0xFFFF
			}

			if err := f.Write(NewRecord(Data, recAddr, data[:n], v)); err != nil {
				return err
			}

			data = data[n:]
			addr += uint32(n)
		}
	}

	if img.HasStart {
		start := []byte{byte(img.Start >> 24), byte(img.Start >> 16), byte(img.Start >> 8), byte(img.Start)}
		if err := f.Write(NewRecord(StartLinearAddress, 0, start, v)); err != nil {
			return err
		}
	}

	return f.Write(NewRecord(EndOfFile, 0, nil, v))
}
