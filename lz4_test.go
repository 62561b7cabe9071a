package tex

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	data := make([]byte, 128*1024)
	for i := range data {
		data[i] = byte((i*31 + 7) & 0xff)
	}

	packed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	out, err := Decompress(packed, len(data))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	if !bytes.Equal(out, data) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestDecompressSizeMismatch(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte("wallpaper"), 512)
	packed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	if _, err := Decompress(packed, len(data)+10); !errors.Is(err, ErrDecompressedSizeMismatch) {
		t.Fatalf("expected ErrDecompressedSizeMismatch, got %v", err)
	}
	if _, err := Decompress(packed, -1); !errors.Is(err, ErrInvalidTargetSize) {
		t.Fatalf("expected ErrInvalidTargetSize, got %v", err)
	}
}

func TestMipmapCompressDecompress(t *testing.T) {
	t.Parallel()

	raw := bytes.Repeat([]byte{1, 2, 3, 4}, 4096)
	m := &Mipmap{Width: 64, Height: 64, Data: append([]byte(nil), raw...)}

	if err := m.Compress(); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !m.IsCompressed {
		t.Fatalf("expected repetitive payload to be compressed")
	}
	if int(m.DecompressedSize) != len(raw) || len(m.Data) >= len(raw) {
		t.Fatalf("unexpected sizes: decompressed=%d stored=%d", m.DecompressedSize, len(m.Data))
	}

	if err := m.Decompress(); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if m.IsCompressed || !bytes.Equal(m.Data, raw) {
		t.Fatalf("decompressed payload mismatch")
	}
}

func TestMipmapCompressSmallPayloadStaysRaw(t *testing.T) {
	t.Parallel()

	m := &Mipmap{Width: 4, Height: 4, Data: make([]byte, 64)}
	if err := m.Compress(); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if m.IsCompressed || m.DecompressedSize != 64 {
		t.Fatalf("expected raw payload with decompressed size 64, got %+v", m)
	}
}

func TestMipmapDecompressLimits(t *testing.T) {
	t.Parallel()

	m := &Mipmap{IsCompressed: true, DecompressedSize: 1 << 20, Data: []byte{0}}
	err := m.DecompressWithLimits(Limits{MaxMipmapByteCount: 1024})
	if !errors.Is(err, ErrUnsafeInput) || !errors.Is(err, ErrDecompressMipmap) {
		t.Fatalf("expected ErrUnsafeInput, got %v", err)
	}

	m = &Mipmap{IsCompressed: true, DecompressedSize: -4}
	if err := m.Decompress(); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
