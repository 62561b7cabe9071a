package tex

import (
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

const (
	// minCompressSize is the payload size below which mipmaps stay raw.
	minCompressSize = 1024
	// maxCompressRatio is the largest compressed/raw ratio worth storing.
	maxCompressRatio = 0.85
)

// ErrIncompressible indicates LZ4 could not shrink the input.
var ErrIncompressible = errors.New("data is incompressible")

// Compress encodes data as a single LZ4 block.
func Compress(data []byte) ([]byte, error) {
	if _, err := i32FromInt(len(data)); err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrSizeOverflow, len(data))
	}

	buf := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlockHC(data, buf, 0, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLZ4Compress, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLZ4Compress, ErrIncompressible)
	}

	return buf[:n], nil
}

// Decompress inflates an LZ4 block that must expand to exactly expectedSize bytes.
func Decompress(data []byte, expectedSize int) ([]byte, error) {
	if expectedSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, expectedSize)
	}

	out := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLZ4Decode, err)
	}
	if n != expectedSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecompressedSizeMismatch, expectedSize, n)
	}

	return out, nil
}

// Decompress replaces a compressed payload with its raw bytes using the
// default limits. Uncompressed mipmaps are left untouched.
func (m *Mipmap) Decompress() error {
	return m.DecompressWithLimits(DefaultLimits())
}

// DecompressWithLimits is Decompress with an explicit ceiling on the
// declared decompressed size.
func (m *Mipmap) DecompressWithLimits(limits Limits) error {
	if !m.IsCompressed {
		return nil
	}

	limits = limits.withDefaults()
	if m.DecompressedSize < 0 {
		return fmt.Errorf("%w: %w: decompressed size %d", ErrDecompressMipmap, ErrFormat, m.DecompressedSize)
	}
	if int(m.DecompressedSize) > limits.MaxMipmapByteCount {
		return fmt.Errorf("%w: %w: decompressed size %d exceeds limit %d",
			ErrDecompressMipmap, ErrUnsafeInput, m.DecompressedSize, limits.MaxMipmapByteCount)
	}

	raw, err := Decompress(m.Data, int(m.DecompressedSize))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecompressMipmap, err)
	}

	m.Data = raw
	m.IsCompressed = false
	return nil
}

// Compress LZ4-compresses the payload in place when that saves enough
// space. Small or incompressible payloads stay raw.
func (m *Mipmap) Compress() error {
	if m.IsCompressed {
		return nil
	}

	size, err := i32FromInt(len(m.Data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompressMipmap, err)
	}
	m.DecompressedSize = size
	if len(m.Data) < minCompressSize {
		return nil
	}

	packed, err := Compress(m.Data)
	if errors.Is(err, ErrIncompressible) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompressMipmap, err)
	}
	if float64(len(packed)) > float64(len(m.Data))*maxCompressRatio {
		return nil
	}

	m.Data = packed
	m.IsCompressed = true
	return nil
}
