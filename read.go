package tex

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF payload decoder
	_ "image/jpeg" // register JPEG payload decoder
	_ "image/png"  // register PNG payload decoder
	"os"

	"github.com/woozymasta/bcn"
)

// ReadOptions configures TEX reading and pixel decoding.
type ReadOptions struct {
	// DecodeOptions are passed to the BCn decoder (e.g. Workers).
	DecodeOptions *bcn.DecodeOptions
	// Limits overrides the safety ceilings. Zero fields use defaults.
	Limits Limits
}

func (o *ReadOptions) limits() Limits {
	if o == nil {
		return DefaultLimits()
	}

	return o.Limits.withDefaults()
}

func (o *ReadOptions) decodeOptions() *bcn.DecodeOptions {
	if o == nil {
		return nil
	}

	return o.DecodeOptions
}

// ReadTextureFile opens and decodes a TEX file without decoding pixels.
func ReadTextureFile(path string, opts *ReadOptions) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadTexture(bufio.NewReader(f), opts)
}

// ReadConfig reads TEX file dimensions without decoding image data.
func ReadConfig(path string) (image.Config, error) {
	t, err := ReadTextureFile(path, nil)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(t.Header.ImageWidth),
		Height:     int(t.Header.ImageHeight),
		ColorModel: color.NRGBAModel,
	}, nil
}

// Read reads a TEX file and decodes its first image.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions reads a TEX file and decodes its first image with the given options.
func ReadWithOptions(path string, opts *ReadOptions) (image.Image, error) {
	t, err := ReadTextureFile(path, opts)
	if err != nil {
		return nil, err
	}

	return t.Image(opts)
}

// Image decodes the largest mipmap of the first image, cropped to the
// header's image size.
func (t *Texture) Image(opts *ReadOptions) (image.Image, error) {
	m := t.Container.FirstMipmap()
	if m == nil {
		return nil, ErrNoImages
	}

	img, err := DecodeMipmap(m, t.Header.Format, t.Container.ImageFormat, opts)
	if err != nil {
		return nil, err
	}

	crop := image.Rect(0, 0, int(t.Header.ImageWidth), int(t.Header.ImageHeight))
	if crop.Empty() || crop.Eq(img.Bounds()) || !crop.In(img.Bounds()) {
		return img, nil
	}
	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(crop), nil
	}

	return img, nil
}

// DecodeMipmap turns a mipmap payload into pixels. Compressed payloads are
// decompressed first without modifying m. Payloads of an encoded image
// format (PNG, JPEG, GIF) are decoded as files; raw payloads use texFormat.
func DecodeMipmap(m *Mipmap, texFormat TexFormat, imageFormat ImageFormat, opts *ReadOptions) (image.Image, error) {
	mip := *m
	if err := mip.DecompressWithLimits(opts.limits()); err != nil {
		return nil, err
	}

	switch {
	case imageFormat.IsVideo():
		return nil, fmt.Errorf("%w: %s payload is video", ErrUnsupportedPixelFormat, imageFormat)
	case imageFormat != FormatUnknown:
		img, _, err := image.Decode(bytes.NewReader(mip.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s payload: %w", ErrDecodeImage, imageFormat, err)
		}
		return img, nil
	}

	width, height := int(mip.Width), int(mip.Height)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: mipmap size %dx%d", ErrFormat, width, height)
	}
	expected := expectedDataLength(texFormat, width, height)
	if expected < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, texFormat)
	}
	if len(mip.Data) < expected {
		return nil, fmt.Errorf("%w: %s %dx%d: expected %d, got %d",
			ErrPayloadSizeMismatch, texFormat, width, height, expected, len(mip.Data))
	}
	data := mip.Data[:expected]

	switch texFormat {
	case TexFormatR8:
		return decodeR8(data, width, height), nil
	case TexFormatRG88:
		return decodeRG88(data, width, height), nil
	}

	var img image.Image
	img, err := bcn.DecodeImageWithOptions(data, width, height, bcnFormat(texFormat), opts.decodeOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}

	return img, nil
}

// decodeR8 wraps single channel data as a grayscale image.
func decodeR8(data []byte, width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, data)
	return img
}

// decodeRG88 maps R to luminance and G to alpha.
func decodeRG88(data []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		lum, alpha := data[i*2], data[i*2+1]
		img.Pix[i*4+0] = lum
		img.Pix[i*4+1] = lum
		img.Pix[i*4+2] = lum
		img.Pix[i*4+3] = alpha
	}

	return img
}
