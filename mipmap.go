package tex

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// payloadChunkSize is the initial buffer for a mipmap payload read.
const payloadChunkSize = 64 << 10

// Mipmap is one resolution level of an image.
type Mipmap struct {
	// Data is the stored payload: compressed bytes when IsCompressed is set.
	Data []byte
	// DecompressedSize is the payload length after decompression (v2+).
	DecompressedSize int32
	Width            int32
	Height           int32
	// IsCompressed marks an LZ4 block compressed payload (v2+).
	IsCompressed bool
}

type (
	mipmapReader func(r io.Reader, limits Limits) (*Mipmap, error)
	mipmapWriter func(w io.Writer, m *Mipmap) error
)

// pickMipmapReader selects the mipmap layout for a container version.
func pickMipmapReader(v ContainerVersion) (mipmapReader, error) {
	switch v {
	case Version1:
		return readMipmapV1, nil
	case Version2, Version3:
		return readMipmapV2And3, nil
	default:
		return nil, fmt.Errorf("%w: %s has no mipmap layout (expected v1..v3)", ErrUnsupportedVersion, v)
	}
}

// pickMipmapWriter selects the mipmap layout for a container version.
func pickMipmapWriter(v ContainerVersion) (mipmapWriter, error) {
	switch v {
	case Version1:
		return writeMipmapV1, nil
	case Version2, Version3:
		return writeMipmapV2And3, nil
	default:
		return nil, fmt.Errorf("%w: %s has no mipmap layout (expected v1..v3)", ErrUnsupportedVersion, v)
	}
}

func readMipmapV1(r io.Reader, limits Limits) (*Mipmap, error) {
	m := &Mipmap{}
	var err error
	if m.Width, err = readInt32(r); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	if m.Height, err = readInt32(r); err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if m.Data, err = readPayload(r, limits); err != nil {
		return nil, err
	}

	return m, nil
}

func readMipmapV2And3(r io.Reader, limits Limits) (*Mipmap, error) {
	m := &Mipmap{}
	var err error
	if m.Width, err = readInt32(r); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	if m.Height, err = readInt32(r); err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	if m.IsCompressed, err = readBool(r); err != nil {
		return nil, fmt.Errorf("compression flag: %w", err)
	}
	if m.DecompressedSize, err = readInt32(r); err != nil {
		return nil, fmt.Errorf("decompressed size: %w", err)
	}
	if m.Data, err = readPayload(r, limits); err != nil {
		return nil, err
	}

	return m, nil
}

// readPayload reads the byte length and exactly that many payload bytes.
func readPayload(r io.Reader, limits Limits) ([]byte, error) {
	n, err := readInt32(r)
	if err != nil {
		return nil, fmt.Errorf("byte length: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: byte length %d", ErrFormat, n)
	}
	if int(n) > limits.MaxMipmapByteCount {
		return nil, fmt.Errorf("%w: byte length %d exceeds limit %d", ErrUnsafeInput, n, limits.MaxMipmapByteCount)
	}

	if n == 0 {
		return []byte{}, nil
	}

	// Memory grows with the bytes actually received, not the declared length.
	var buf bytes.Buffer
	buf.Grow(min(int(n), payloadChunkSize))
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("payload: %w: need %d bytes, got %d: %w", ErrTruncatedInput, n, buf.Len(), err)
		}
		return nil, fmt.Errorf("payload: %w", err)
	}

	return buf.Bytes(), nil
}

func writeMipmapV1(w io.Writer, m *Mipmap) error {
	if m.IsCompressed {
		return fmt.Errorf("%w: compressed mipmap in %s container", ErrIncompatibleCompression, Version1)
	}

	if err := writeInt32(w, m.Width); err != nil {
		return err
	}
	if err := writeInt32(w, m.Height); err != nil {
		return err
	}
	return writeBytes(w, m.Data)
}

func writeMipmapV2And3(w io.Writer, m *Mipmap) error {
	if err := writeInt32(w, m.Width); err != nil {
		return err
	}
	if err := writeInt32(w, m.Height); err != nil {
		return err
	}
	if err := writeInt32(w, b32(m.IsCompressed)); err != nil {
		return err
	}
	if err := writeInt32(w, m.DecompressedSize); err != nil {
		return err
	}
	return writeBytes(w, m.Data)
}

// calculateMipMapCount calculates the number of mipmap levels for a given width and height.
func calculateMipMapCount(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, ErrSizeOverflow
	}

	count := 1
	w, h := width, height
	for w > 1 || h > 1 {
		count++
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}

	if count > 11 {
		count = 11
	}

	return count, nil
}
