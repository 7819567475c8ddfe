// Package ihex reads and writes Intel HEX object files.
//
// # Intel HEX File Format
//
// An Intel HEX file is ASCII text with one record per line. Every record
// starts with a colon followed by hex digit pairs:
//
//	:[ByteCount(2)][Address(4 or 8)][RecordType(2)][Data(2*ByteCount)][Checksum(2)]
//
// The checksum is the 2's complement of the sum of all preceding bytes, so
// the bytes of a valid record always sum to zero modulo 256.
//
// Example record:
//
//	:0300300002337A1E
//	  03 = Byte Count (3 data bytes)
//	  0030 = Address (0x0030)
//	  00 = Record Type (data)
//	  02337A = Data
//	  1E = Checksum
//
// # Address Widths
//
// Two address field widths are supported:
//   - Width16 ("ihx8"): 4 hex digit addresses, the common Intel HEX layout
//   - Width32 ("ihx16"): 8 hex digit addresses
//
// Load detects the width from the first line of a file.
//
// # Usage
//
// Read every record of a file:
//
//	f, err := ihex.Load("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	for rec, err := range f.Records() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("%s at 0x%04X: % X\n", rec.Type, rec.Address, rec.Data)
//	}
//
// Write a file:
//
//	f, err := ihex.Create("out.hex", ihex.Width16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	_ = f.Write(ihex.NewRecord(ihex.Data, 0x0100, payload, ihex.Width16))
//	_ = f.Write(ihex.NewRecord(ihex.EndOfFile, 0, nil, ihex.Width16))
//
// # Error Handling
//
// Every error matches one of the package sentinels with errors.Is:
//   - ErrFileOpen: the file could not be opened (*FileOpenError)
//   - ErrUnknownFormat: the first line fits neither address width
//   - ErrMalformedRecord: bad start code, hex digits or record type (*MalformedRecordError)
//   - ErrLengthMismatch: byte count disagrees with the data present (*LengthMismatchError)
//   - ErrChecksumMismatch: the checksum does not balance (*ChecksumMismatchError)
//   - ErrIO: reading, writing or closing the handle failed (*IOError)
//
// A read session stops at the first bad record; it never skips lines.
package ihex
