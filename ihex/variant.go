package ihex

import (
	"fmt"
	"strings"
)

// Variant selects the width of the address field of every record in a file.
type Variant int

const (
	// Width16 uses a 4 hex digit (16-bit) address field. Historically "ihx8".
	Width16 Variant = iota + 1

	// Width32 uses an 8 hex digit (32-bit) address field. Historically "ihx16".
	Width32
)

// Fixed fields of a record line, in hex digits.
const (
	byteCountDigits  = 2
	recordTypeDigits = 2
	checksumDigits   = 2

	fixedDigits = byteCountDigits + recordTypeDigits + checksumDigits
)

// StartCode is the marker every record line begins with.
const StartCode = ':'

// ParseVariant converts a name such as "ihx8", "ihx16", "16" or "width32"
// into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ihx8", "16", "width16":
		return Width16, nil
	case "ihx16", "32", "width32":
		return Width32, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (must be ihx8 or ihx16)", s)
	}
}

// Valid reports whether v is a defined variant.
func (v Variant) Valid() bool {
	return v == Width16 || v == Width32
}

// AddressDigits returns the number of hex digits in the address field.
func (v Variant) AddressDigits() int {
	return v.addressBytes() * 2
}

// MaxAddress returns the largest address representable by the variant.
func (v Variant) MaxAddress() uint32 {
	if v == Width32 {
		return 0xFFFFFFFF
	}
	return 0xFFFF
}

// LineDigits returns the number of hex digits after the start code in a
// record carrying count data bytes.
func (v Variant) LineDigits(count int) int {
	return fixedDigits + v.AddressDigits() + 2*count
}

func (v Variant) addressBytes() int {
	if v == Width32 {
		return 4
	}
	return 2
}

func (v Variant) String() string {
	switch v {
	case Width16:
		return "ihx8"
	case Width32:
		return "ihx16"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}
