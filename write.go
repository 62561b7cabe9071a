package tex

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/woozymasta/bcn"
)

// WriteOptions configures building a texture from an image.
type WriteOptions struct {
	// EncodeOptions are passed to the BCn encoder.
	EncodeOptions *bcn.EncodeOptions
	// Format is the pixel layout of the mipmap payloads.
	Format TexFormat
	// Version is the container version; zero means Version3.
	Version ContainerVersion
	// Flags are copied into the texture header.
	Flags TexFlags
	// MaxMipMaps limits the mip chain; 0 means full chain.
	MaxMipMaps int
	// Compress stores LZ4 compressed payloads where that saves space.
	Compress bool
}

// DefaultWriteOptions returns DXT5, full mip chain, LZ4 compressed, version 3.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{
		Format:   TexFormatDXT5,
		Version:  Version3,
		Compress: true,
	}
}

// Write writes img as a TEX file with DefaultWriteOptions.
func Write(img image.Image, path string) error {
	return WriteWithOptions(img, path, nil)
}

// WriteWithOptions writes img as a TEX file. Nil opts uses DefaultWriteOptions.
func WriteWithOptions(img image.Image, path string, opts *WriteOptions) error {
	t, err := NewTexture(img, opts)
	if err != nil {
		return err
	}

	return WriteTextureFile(path, t)
}

// WriteTextureFile encodes t into a new file at path. On error no file is
// left behind.
func WriteTextureFile(path string, t *Texture) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrCreateFile, path, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := WriteTexture(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrCreateFile, path, err)
	}

	return f.Close()
}

// NewTexture builds a single-image texture with a mip chain from img.
func NewTexture(img image.Image, opts *WriteOptions) (*Texture, error) {
	if opts == nil {
		opts = DefaultWriteOptions()
	}
	if !opts.Format.IsValid() {
		return nil, fmt.Errorf("%w: texture format %d", ErrInvalidEnum, int32(opts.Format))
	}
	version := opts.Version
	if version == 0 {
		version = Version3
	}
	if !version.IsValid() {
		return nil, fmt.Errorf("%w: container version %d", ErrInvalidEnum, int32(version))
	}
	if version == Version1 && opts.Compress {
		return nil, fmt.Errorf("%w: %s cannot store compressed mipmaps", ErrIncompatibleCompression, version)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	w32, err := i32FromInt(width)
	if err != nil {
		return nil, err
	}
	h32, err := i32FromInt(height)
	if err != nil {
		return nil, err
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", ErrFormat, width, height)
	}

	mipMapCount, err := calculateMipMapCount(width, height)
	if err != nil {
		return nil, err
	}
	if opts.MaxMipMaps > 0 && opts.MaxMipMaps < mipMapCount {
		mipMapCount = opts.MaxMipMaps
	}

	mips := bcn.GenerateMipmaps(img, false)
	if len(mips) > mipMapCount {
		mips = mips[:mipMapCount]
	}

	out := &Image{Mipmaps: make([]*Mipmap, 0, len(mips))}
	for i, mip := range mips {
		mb := mip.Bounds()
		var data []byte
		switch opts.Format {
		case TexFormatR8:
			data = encodeR8(mip)
		case TexFormatRG88:
			data = encodeRG88(mip)
		default:
			data, _, _, err = bcn.EncodeImageWithOptions(mip, bcnFormat(opts.Format), opts.EncodeOptions)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %w", ErrEncodeMipmap, i, err)
		}

		m := &Mipmap{Width: int32(mb.Dx()), Height: int32(mb.Dy()), Data: data} // #nosec G115 -- bounded by width/height.
		if version != Version1 {
			if opts.Compress {
				if err := m.Compress(); err != nil {
					return nil, fmt.Errorf("mipmap %d: %w", i, err)
				}
			} else if m.DecompressedSize, err = i32FromInt(len(data)); err != nil {
				return nil, err
			}
		}
		out.Mipmaps = append(out.Mipmaps, m)
	}

	c := NewContainer(version, FormatUnknown)
	c.Images = []*Image{out}

	return &Texture{
		Header: TexHeader{
			Format:        opts.Format,
			Flags:         opts.Flags &^ FlagIsGIF,
			TextureWidth:  w32,
			TextureHeight: h32,
			ImageWidth:    w32,
			ImageHeight:   h32,
		},
		Container: c,
	}, nil
}

// encodeR8 stores luminance only.
func encodeR8(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	}

	return out
}

// encodeRG88 stores luminance in R and alpha in G.
func encodeRG88(img image.Image) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			nc := color.NRGBAModel.Convert(c).(color.NRGBA)
			gray := color.GrayModel.Convert(color.NRGBA{R: nc.R, G: nc.G, B: nc.B, A: 255}).(color.Gray)
			out = append(out, gray.Y, nc.A)
		}
	}

	return out
}
