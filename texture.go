package tex

import (
	"fmt"
	"io"
)

// Texture file tags.
const (
	TextureMagic     = "TEXV0005"
	TextureInfoMagic = "TEXI0001"
)

// TexHeader describes the texture as a whole. TextureWidth/Height are the
// stored (usually power-of-two) dimensions, ImageWidth/Height the visible
// region of the first mipmap.
type TexHeader struct {
	Format        TexFormat
	Flags         TexFlags
	TextureWidth  int32
	TextureHeight int32
	ImageWidth    int32
	ImageHeight   int32
	Reserved      uint32
}

// Texture is a complete TEX file.
type Texture struct {
	Container *Container
	// FrameInfo is present only when Header.Flags has FlagIsGIF.
	FrameInfo *FrameInfoContainer
	Header    TexHeader
}

// IsAnimated reports whether the texture carries a frame table.
func (t *Texture) IsAnimated() bool {
	return t.Header.Flags.Has(FlagIsGIF)
}

// ReadTexture decodes a TEX file. Nil opts uses DefaultLimits.
func ReadTexture(r io.Reader, opts *ReadOptions) (*Texture, error) {
	if err := readTextureMagic(r, TextureMagic); err != nil {
		return nil, err
	}
	if err := readTextureMagic(r, TextureInfoMagic); err != nil {
		return nil, err
	}

	header, err := readTexHeader(r)
	if err != nil {
		return nil, err
	}

	container, err := ReadContainer(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadContainer, err)
	}

	t := &Texture{Header: header, Container: container}
	if t.IsAnimated() {
		if t.FrameInfo, err = readFrameInfoContainer(r, opts.limits()); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readTextureMagic(r io.Reader, want string) error {
	magic, err := readLPString(r, magicMaxLength)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMagic, err)
	}
	if magic != want {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnknownMagic, magic, want)
	}

	return nil
}

func readTexHeader(r io.Reader) (TexHeader, error) {
	var h TexHeader

	format, err := readInt32(r)
	if err != nil {
		return h, fmt.Errorf("%w: format: %w", ErrReadHeader, err)
	}
	h.Format = TexFormat(format)
	if !h.Format.IsValid() {
		return h, fmt.Errorf("%w: texture format %d", ErrInvalidEnum, format)
	}

	flags, err := readUint32(r)
	if err != nil {
		return h, fmt.Errorf("%w: flags: %w", ErrReadHeader, err)
	}
	h.Flags = TexFlags(flags)

	for _, f := range []struct {
		name string
		dst  *int32
	}{
		{"texture width", &h.TextureWidth},
		{"texture height", &h.TextureHeight},
		{"image width", &h.ImageWidth},
		{"image height", &h.ImageHeight},
	} {
		if *f.dst, err = readInt32(r); err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrReadHeader, f.name, err)
		}
	}

	if h.Reserved, err = readUint32(r); err != nil {
		return h, fmt.Errorf("%w: reserved: %w", ErrReadHeader, err)
	}

	return h, nil
}

// WriteTexture encodes t. The frame table is written iff the header has
// FlagIsGIF set.
func WriteTexture(w io.Writer, t *Texture) error {
	if !t.Header.Format.IsValid() {
		return fmt.Errorf("%w: texture format %d", ErrInvalidEnum, int32(t.Header.Format))
	}
	if t.Container == nil {
		return fmt.Errorf("%w: %w", ErrWriteContainer, ErrNoImages)
	}
	if t.IsAnimated() && t.FrameInfo == nil {
		return fmt.Errorf("%w: animated texture without frame info", ErrInconsistentContainer)
	}

	for _, magic := range []string{TextureMagic, TextureInfoMagic} {
		if err := writeLPString(w, magic, magicMaxLength); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteMagic, err)
		}
	}

	h := t.Header
	for _, v := range []uint32{
		uint32(h.Format), // #nosec G115 -- validated enum.
		uint32(h.Flags),
		uint32(h.TextureWidth),  // #nosec G115 -- wire reinterpretation.
		uint32(h.TextureHeight), // #nosec G115 -- wire reinterpretation.
		uint32(h.ImageWidth),    // #nosec G115 -- wire reinterpretation.
		uint32(h.ImageHeight),   // #nosec G115 -- wire reinterpretation.
		h.Reserved,
	} {
		if err := writeUint32(w, v); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteHeader, err)
		}
	}

	if err := WriteContainer(w, t.Container); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContainer, err)
	}

	if t.IsAnimated() {
		return writeFrameInfoContainer(w, t.FrameInfo)
	}

	return nil
}
