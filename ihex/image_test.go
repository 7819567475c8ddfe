package ihex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildImage(t *testing.T) {
	v := Width16
	tests := []struct {
		name     string
		records  []*Record
		segments []Segment
		start    uint32
		hasStart bool
	}{
		{
			name: "adjacent records merge",
			records: []*Record{
				NewRecord(Data, 0x0000, []byte{1, 2}, v),
				NewRecord(Data, 0x0002, []byte{3, 4}, v),
				NewRecord(EndOfFile, 0, nil, v),
			},
			segments: []Segment{{Address: 0x0000, Data: []byte{1, 2, 3, 4}}},
		},
		{
			name: "out of order records merge",
			records: []*Record{
				NewRecord(Data, 0x0010, []byte{3, 4}, v),
				NewRecord(Data, 0x0020, []byte{9}, v),
				NewRecord(Data, 0x000E, []byte{1, 2}, v),
			},
			segments: []Segment{
				{Address: 0x000E, Data: []byte{1, 2, 3, 4}},
				{Address: 0x0020, Data: []byte{9}},
			},
		},
		{
			name: "extended linear address",
			records: []*Record{
				NewRecord(ExtendedLinearAddress, 0, []byte{0x08, 0x00}, v),
				NewRecord(Data, 0x0010, []byte{0xAA}, v),
			},
			segments: []Segment{{Address: 0x08000010, Data: []byte{0xAA}}},
		},
		{
			name: "extended segment address",
			records: []*Record{
				NewRecord(ExtendedSegmentAddress, 0, []byte{0x10, 0x00}, v),
				NewRecord(Data, 0x0004, []byte{0xBB}, v),
			},
			segments: []Segment{{Address: 0x00010004, Data: []byte{0xBB}}},
		},
		{
			name: "start linear address",
			records: []*Record{
				NewRecord(StartLinearAddress, 0, []byte{0x08, 0x00, 0x01, 0x23}, v),
			},
			start:    0x08000123,
			hasStart: true,
		},
		{
			name: "start segment address",
			records: []*Record{
				NewRecord(StartSegmentAddress, 0, []byte{0x10, 0x00, 0x00, 0x20}, v),
			},
			start:    0x00010020,
			hasStart: true,
		},
		{
			name: "records after end of file are ignored",
			records: []*Record{
				NewRecord(Data, 0x0000, []byte{1}, v),
				NewRecord(EndOfFile, 0, nil, v),
				NewRecord(Data, 0x0000, []byte{2}, v),
			},
			segments: []Segment{{Address: 0x0000, Data: []byte{1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := BuildImage(tt.records)
			require.NoError(t, err)
			assert.Equal(t, tt.segments, img.Segments)
			assert.Equal(t, tt.start, img.Start)
			assert.Equal(t, tt.hasStart, img.HasStart)
		})
	}
}

func TestBuildImageErrors(t *testing.T) {
	v := Width16

	_, err := BuildImage([]*Record{
		NewRecord(Data, 0x0000, []byte{1, 2, 3, 4}, v),
		NewRecord(Data, 0x0002, []byte{5}, v),
	})
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Contains(t, err.Error(), "record 2")

	var overlap *OverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, uint32(0x0002), overlap.Address)

	_, err = BuildImage([]*Record{NewRecord(ExtendedLinearAddress, 0, []byte{1}, v)})
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "must carry 2 bytes")

	_, err = BuildImage([]*Record{NewRecord(StartLinearAddress, 0, []byte{1, 2}, v)})
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestImageAccessors(t *testing.T) {
	img := &Image{}
	low, high := img.Bounds()
	assert.Zero(t, low)
	assert.Zero(t, high)

	require.NoError(t, img.Add(0x10, []byte{1, 2}))
	require.NoError(t, img.Add(0x14, []byte{5}))
	require.NoError(t, img.Add(0x12, nil))

	assert.Equal(t, 3, img.Size())
	low, high = img.Bounds()
	assert.Equal(t, uint32(0x10), low)
	assert.Equal(t, uint64(0x15), high)

	assert.Equal(t, []byte{0xFF, 1, 2, 0xFF, 0xFF, 5, 0xFF}, img.Bytes(0x0F, 7, 0xFF))
	assert.Equal(t, []byte{2, 0x00}, img.Bytes(0x11, 2, 0x00))

	err := img.Add(0xFFFFFFFF, []byte{1, 2})
	assert.Error(t, err)
}

func TestImageAddCopiesData(t *testing.T) {
	img := &Image{}
	data := []byte{1, 2, 3}
	require.NoError(t, img.Add(0, data))
	data[0] = 9
	assert.Equal(t, byte(1), img.Segments[0].Data[0])
}

func TestWriteImageWidth16PageCrossing(t *testing.T) {
	img := &Image{}
	require.NoError(t, img.Add(0xFFFE, []byte{1, 2, 3, 4}))
	img.Start = 0x00010000
	img.HasStart = true

	buf := &bufferCloser{}
	f := NewWriter(buf, Width16)
	require.NoError(t, WriteImage(f, img, 16))
	require.NoError(t, f.Close())

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	codec := NewCodec(Width16)
	var types []RecordType
	for _, line := range got {
		rec, err := codec.Decode(line)
		require.NoError(t, err)
		types = append(types, rec.Type)
	}
	assert.Equal(t, []RecordType{Data, ExtendedLinearAddress, Data, StartLinearAddress, EndOfFile}, types)

	// reading the output back reproduces the image
	r := NewReader(newReadCloser(buf.String()), Width16)
	defer r.Close()
	var records []*Record
	for rec, err := range r.Records() {
		require.NoError(t, err)
		records = append(records, rec)
	}

	back, err := BuildImage(records)
	require.NoError(t, err)
	assert.Equal(t, img, back)
}

func TestWriteImageWidth32(t *testing.T) {
	img := &Image{}
	require.NoError(t, img.Add(0x0800FFF8, make([]byte, 20)))

	buf := &bufferCloser{}
	f := NewWriter(buf, Width32)
	require.NoError(t, WriteImage(f, img, 0))

	out := buf.String()
	assert.NotContains(t, out, ":02000004")
	// 16 + 4 data bytes, then end of file
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.True(t, strings.HasSuffix(out, lineEOF32+"\n"))
}

func TestWriteImageLineLength(t *testing.T) {
	img := &Image{}
	require.NoError(t, img.Add(0, make([]byte, 10)))

	f := NewWriter(&bufferCloser{}, Width16)
	assert.Error(t, WriteImage(f, img, 256))
	assert.Error(t, WriteImage(f, img, -1))

	buf := &bufferCloser{}
	f = NewWriter(buf, Width16)
	require.NoError(t, WriteImage(f, img, 4))
	// 4 + 4 + 2, then end of file
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
}
