package tex

import (
	"fmt"
	"io"
)

// Image is one bitmap stored as a mipmap pyramid, level 0 (largest) first.
type Image struct {
	Mipmaps []*Mipmap
}

// readImage decodes one image using the mipmap layout of the effective
// (already normalized) container version.
func readImage(r io.Reader, v ContainerVersion, limits Limits) (*Image, error) {
	readMipmap, err := pickMipmapReader(v)
	if err != nil {
		return nil, err
	}

	count, err := readInt32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMipmapCount, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: mipmap count %d", ErrFormat, count)
	}
	if int(count) > limits.MaxMipmapCount {
		return nil, fmt.Errorf("%w: mipmap count %d exceeds limit %d", ErrUnsafeInput, count, limits.MaxMipmapCount)
	}

	img := &Image{Mipmaps: make([]*Mipmap, 0, count)}
	for i := int32(0); i < count; i++ {
		m, err := readMipmap(r, limits)
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %w", ErrReadMipmap, i, err)
		}
		img.Mipmaps = append(img.Mipmaps, m)
	}

	return img, nil
}

func writeImage(w io.Writer, v ContainerVersion, img *Image) error {
	writeMipmap, err := pickMipmapWriter(v)
	if err != nil {
		return err
	}

	count, err := i32FromInt(len(img.Mipmaps))
	if err != nil {
		return err
	}
	if err := writeInt32(w, count); err != nil {
		return err
	}

	for i, m := range img.Mipmaps {
		if err := writeMipmap(w, m); err != nil {
			return fmt.Errorf("%w: mipmap %d: %w", ErrWriteMipmap, i, err)
		}
	}

	return nil
}
