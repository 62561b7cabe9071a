package tex

import (
	"fmt"
	"io"
)

// Container is a decoded TEXB image container.
type Container struct {
	// Magic is the stored tag, "TEXB0001".."TEXB0004".
	Magic string
	// Images are kept in storage order.
	Images []*Image
	// Version is the effective version. A TEXB0004 container whose format
	// is not MP4 has the version 3 layout and reports Version3.
	Version ContainerVersion
	// ImageFormat is FormatUnknown for raw pixel payloads and for v1/v2.
	ImageFormat ImageFormat
}

// NewContainer returns an empty container for version v. Version 4 only
// differs from version 3 for video; other formats get the version 3 layout.
func NewContainer(v ContainerVersion, format ImageFormat) *Container {
	c := &Container{Magic: v.Magic(), Version: v, ImageFormat: format}
	if v == Version4 && format != FormatMP4 {
		c.Version = Version3
	}

	return c
}

// Validate checks that magic, version and format agree.
func (c *Container) Validate() error {
	tagVersion, err := parseContainerMagic(c.Magic)
	if err != nil {
		return err
	}
	if !c.ImageFormat.IsValid() {
		return fmt.Errorf("%w: image format %d", ErrInvalidEnum, int32(c.ImageFormat))
	}

	switch {
	case tagVersion == Version4 && c.ImageFormat == FormatMP4:
		if c.Version != Version4 {
			return fmt.Errorf("%w: %s video container with version %s", ErrInconsistentContainer, c.Magic, c.Version)
		}
	case tagVersion == Version4:
		if c.Version != Version3 {
			return fmt.Errorf("%w: %s %s container must use version %s", ErrInconsistentContainer, c.Magic, c.ImageFormat, Version3)
		}
	case c.Version != tagVersion:
		return fmt.Errorf("%w: magic %s with version %s", ErrInconsistentContainer, c.Magic, c.Version)
	}

	if tagVersion < Version3 && c.ImageFormat != FormatUnknown {
		return fmt.Errorf("%w: %s cannot store image format %s", ErrInconsistentContainer, c.Magic, c.ImageFormat)
	}

	return nil
}

// FirstMipmap returns the largest mipmap of the first image, or nil.
func (c *Container) FirstMipmap() *Mipmap {
	if len(c.Images) == 0 || len(c.Images[0].Mipmaps) == 0 {
		return nil
	}

	return c.Images[0].Mipmaps[0]
}

// ReadContainer decodes an image container. Nil opts uses DefaultLimits.
// Decoding is all-or-nothing: on error no container is returned.
func ReadContainer(r io.Reader, opts *ReadOptions) (*Container, error) {
	limits := opts.limits()

	magic, err := readLPString(r, magicMaxLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMagic, err)
	}
	version, err := parseContainerMagic(magic)
	if err != nil {
		return nil, err
	}

	imageCount, err := readInt32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadImageCount, err)
	}
	if int(imageCount) > limits.MaxImageCount {
		return nil, fmt.Errorf("%w: image count %d exceeds limit %d", ErrUnsafeInput, imageCount, limits.MaxImageCount)
	}
	if imageCount < 0 {
		return nil, fmt.Errorf("%w: image count %d", ErrFormat, imageCount)
	}

	c := &Container{Magic: magic, Version: version, ImageFormat: FormatUnknown}

	switch version {
	case Version3:
		code, err := readInt32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: image format: %w", ErrReadHeader, err)
		}
		c.ImageFormat = ImageFormat(code)
	case Version4:
		code, err := readInt32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: image format: %w", ErrReadHeader, err)
		}
		isVideo, err := readInt32(r)
		if err != nil {
			return nil, fmt.Errorf("%w: video flag: %w", ErrReadHeader, err)
		}
		c.ImageFormat = ImageFormat(code)
		if c.ImageFormat == FormatUnknown && isVideo == 1 {
			c.ImageFormat = FormatMP4
		}
		if c.ImageFormat != FormatMP4 {
			c.Version = Version3
		}
	}

	if !c.ImageFormat.IsValid() {
		return nil, fmt.Errorf("%w: image format %d in %s", ErrInvalidEnum, int32(c.ImageFormat), magic)
	}

	c.Images = make([]*Image, 0, imageCount)
	for i := int32(0); i < imageCount; i++ {
		img, err := readImage(r, c.Version, limits)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %w", ErrReadImage, i, err)
		}
		c.Images = append(c.Images, img)
	}

	return c, nil
}

// WriteContainer encodes c using its stored magic, version and format.
func WriteContainer(w io.Writer, c *Container) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := writeLPString(w, c.Magic, magicMaxLength); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteMagic, err)
	}
	count, err := i32FromInt(len(c.Images))
	if err != nil {
		return err
	}
	if err := writeInt32(w, count); err != nil {
		return fmt.Errorf("%w: image count: %w", ErrWriteHeader, err)
	}

	tagVersion, _ := parseContainerMagic(c.Magic)
	switch tagVersion {
	case Version3:
		if err := writeInt32(w, int32(c.ImageFormat)); err != nil {
			return fmt.Errorf("%w: image format: %w", ErrWriteHeader, err)
		}
	case Version4:
		code, isVideo := c.ImageFormat, c.ImageFormat.IsVideo()
		if isVideo {
			code = FormatUnknown
		}
		if err := writeInt32(w, int32(code)); err != nil {
			return fmt.Errorf("%w: image format: %w", ErrWriteHeader, err)
		}
		if err := writeInt32(w, b32(isVideo)); err != nil {
			return fmt.Errorf("%w: video flag: %w", ErrWriteHeader, err)
		}
	}

	for i, img := range c.Images {
		if err := writeImage(w, c.Version, img); err != nil {
			return fmt.Errorf("%w: image %d: %w", ErrWriteImage, i, err)
		}
	}

	return nil
}
