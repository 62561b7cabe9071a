package tex

import (
	"bytes"
	"errors"
	"runtime"
	"testing"
)

func TestImageCompressionCompatibility(t *testing.T) {
	t.Parallel()

	img := &Image{Mipmaps: []*Mipmap{
		{Width: 4, Height: 4, IsCompressed: true, DecompressedSize: 64, Data: []byte{0x10, 0x20, 0x30}},
	}}

	tests := []struct {
		name    string
		version ContainerVersion
		wantErr error
	}{
		{name: "v1", version: Version1, wantErr: ErrIncompatibleCompression},
		{name: "v2", version: Version2},
		{name: "v3", version: Version3},
		{name: "v4", version: Version4, wantErr: ErrUnsupportedVersion},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := writeImage(&buf, tc.version, img)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("writeImage: %v", err)
			}

			got, err := readImage(bytes.NewReader(buf.Bytes()), tc.version, DefaultLimits())
			if err != nil {
				t.Fatalf("readImage: %v", err)
			}
			m := got.Mipmaps[0]
			if !m.IsCompressed || m.DecompressedSize != 64 || !bytes.Equal(m.Data, img.Mipmaps[0].Data) {
				t.Fatalf("unexpected mipmap: %+v", m)
			}
		})
	}
}

func TestMipmapWireLayout(t *testing.T) {
	t.Parallel()

	m := &Mipmap{Width: 2, Height: 1, DecompressedSize: 8, Data: []byte{0xaa, 0xbb}}

	tests := []struct {
		name  string
		write mipmapWriter
		want  []byte
	}{
		{
			name:  "v1",
			write: writeMipmapV1,
			want:  (&streamBuilder{}).i32(2, 1, 2).raw([]byte{0xaa, 0xbb}).buf.Bytes(),
		},
		{
			name:  "v2-v3",
			write: writeMipmapV2And3,
			want:  (&streamBuilder{}).i32(2, 1, 0, 8, 2).raw([]byte{0xaa, 0xbb}).buf.Bytes(),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := tc.write(&buf, m); err != nil {
				t.Fatalf("write: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tc.want) {
				t.Fatalf("wire = %x, want %x", buf.Bytes(), tc.want)
			}
		})
	}
}

func TestMipmapEmptyPayload(t *testing.T) {
	t.Parallel()

	for _, v := range []ContainerVersion{Version1, Version2, Version3} {
		v := v
		t.Run(v.String(), func(t *testing.T) {
			t.Parallel()

			write, err := pickMipmapWriter(v)
			if err != nil {
				t.Fatalf("pickMipmapWriter: %v", err)
			}
			read, err := pickMipmapReader(v)
			if err != nil {
				t.Fatalf("pickMipmapReader: %v", err)
			}

			var buf bytes.Buffer
			if err := write(&buf, &Mipmap{Width: 1, Height: 1}); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := read(bytes.NewReader(buf.Bytes()), DefaultLimits())
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got.Data == nil || len(got.Data) != 0 {
				t.Fatalf("expected empty non-nil payload, got %#v", got.Data)
			}
		})
	}
}

func TestCalculateMipMapCountTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    int
		h    int
		want int
	}{
		{name: "1x1", w: 1, h: 1, want: 1},
		{name: "4x4", w: 4, h: 4, want: 3},
		{name: "8x2", w: 8, h: 2, want: 4},
		{name: "5x7", w: 5, h: 7, want: 3},
		{name: "capped", w: 4096, h: 4096, want: 11},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := calculateMipMapCount(tc.w, tc.h)
			if err != nil {
				t.Fatalf("calculateMipMapCount: %v", err)
			}
			if got != tc.want {
				t.Fatalf("calculateMipMapCount(%d,%d) = %d, want %d", tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestTruncatedPayloadAllocation(t *testing.T) {
	// Not parallel: the allocation counter is process wide.
	s := (&streamBuilder{}).
		str("TEXB0002").
		i32(1, 1, 4, 4, 0, 64, DefaultMaxMipmapByteCount)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := ReadContainer(s.reader(), nil)
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
	if grew := after.TotalAlloc - before.TotalAlloc; grew > 16<<20 {
		t.Fatalf("allocated %d bytes for a %d byte stream", grew, s.buf.Len())
	}
}

func TestReadPayloadIncremental(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{0x5a}, 3*payloadChunkSize+17)
	var buf bytes.Buffer
	if err := writeBytes(&buf, data); err != nil {
		t.Fatalf("writeBytes: %v", err)
	}

	got, err := readPayload(bytes.NewReader(buf.Bytes()), DefaultLimits())
	if err != nil {
		t.Fatalf("readPayload: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("payload mismatch: got %d bytes, want %d", len(got), len(data))
	}

	short := buf.Bytes()[:buf.Len()-1]
	if _, err := readPayload(bytes.NewReader(short), DefaultLimits()); !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
}
