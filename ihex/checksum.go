package ihex

// CalculateChecksum computes the Intel HEX checksum of a record's bytes.
//
// The bytes are summed modulo 256 and the 2's complement of the sum is
// returned, so that the sum of all bytes plus the checksum is zero.
func CalculateChecksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	// Return 2's complement: invert and add 1
	return ^sum + 1
}

// balanced reports whether a full record (checksum included) sums to zero.
func balanced(data []byte) bool {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum == 0
}
