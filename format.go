package tex

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"
)

// ImageFormat is the FreeImage format code stored in TEXB0003+ containers.
// It describes what a mipmap payload holds when it is an encoded file.
type ImageFormat int32

// FreeImage format codes. FormatLBM and FormatIFF share one value.
const (
	FormatUnknown ImageFormat = -1
	FormatBMP     ImageFormat = 0
	FormatICO     ImageFormat = 1
	FormatJPEG    ImageFormat = 2
	FormatJNG     ImageFormat = 3
	FormatKOALA   ImageFormat = 4
	FormatLBM     ImageFormat = 5
	FormatIFF     ImageFormat = 5
	FormatMNG     ImageFormat = 6
	FormatPBM     ImageFormat = 7
	FormatPBMRAW  ImageFormat = 8
	FormatPCD     ImageFormat = 9
	FormatPCX     ImageFormat = 10
	FormatPGM     ImageFormat = 11
	FormatPGMRAW  ImageFormat = 12
	FormatPNG     ImageFormat = 13
	FormatPPM     ImageFormat = 14
	FormatPPMRAW  ImageFormat = 15
	FormatRAS     ImageFormat = 16
	FormatTARGA   ImageFormat = 17
	FormatTIFF    ImageFormat = 18
	FormatWBMP    ImageFormat = 19
	FormatPSD     ImageFormat = 20
	FormatCUT     ImageFormat = 21
	FormatXBM     ImageFormat = 22
	FormatXPM     ImageFormat = 23
	FormatDDS     ImageFormat = 24
	FormatGIF     ImageFormat = 25
	FormatHDR     ImageFormat = 26
	FormatFAXG3   ImageFormat = 27
	FormatSGI     ImageFormat = 28
	FormatEXR     ImageFormat = 29
	FormatJ2K     ImageFormat = 30
	FormatJP2     ImageFormat = 31
	FormatPFM     ImageFormat = 32
	FormatPICT    ImageFormat = 33
	FormatRAW     ImageFormat = 34
	FormatMP4     ImageFormat = 35
)

type imageFormatInfo struct {
	name string
	ext  string
}

// imageFormats is the closed set of legal ImageFormat values.
var imageFormats = map[ImageFormat]imageFormatInfo{
	FormatUnknown: {"UNKNOWN", ""},
	FormatBMP:     {"BMP", ".bmp"},
	FormatICO:     {"ICO", ".ico"},
	FormatJPEG:    {"JPEG", ".jpg"},
	FormatJNG:     {"JNG", ".jng"},
	FormatKOALA:   {"KOALA", ".koa"},
	FormatLBM:     {"LBM", ".iff"},
	FormatMNG:     {"MNG", ".mng"},
	FormatPBM:     {"PBM", ".pbm"},
	FormatPBMRAW:  {"PBMRAW", ".pbm"},
	FormatPCD:     {"PCD", ".pcd"},
	FormatPCX:     {"PCX", ".pcx"},
	FormatPGM:     {"PGM", ".pgm"},
	FormatPGMRAW:  {"PGMRAW", ".pgm"},
	FormatPNG:     {"PNG", ".png"},
	FormatPPM:     {"PPM", ".ppm"},
	FormatPPMRAW:  {"PPMRAW", ".ppm"},
	FormatRAS:     {"RAS", ".ras"},
	FormatTARGA:   {"TARGA", ".tga"},
	FormatTIFF:    {"TIFF", ".tif"},
	FormatWBMP:    {"WBMP", ".wbmp"},
	FormatPSD:     {"PSD", ".psd"},
	FormatCUT:     {"CUT", ".cut"},
	FormatXBM:     {"XBM", ".xbm"},
	FormatXPM:     {"XPM", ".xpm"},
	FormatDDS:     {"DDS", ".dds"},
	FormatGIF:     {"GIF", ".gif"},
	FormatHDR:     {"HDR", ".hdr"},
	FormatFAXG3:   {"FAXG3", ".g3"},
	FormatSGI:     {"SGI", ".sgi"},
	FormatEXR:     {"EXR", ".exr"},
	FormatJ2K:     {"J2K", ".j2k"},
	FormatJP2:     {"JP2", ".jp2"},
	FormatPFM:     {"PFM", ".pfm"},
	FormatPICT:    {"PICT", ".pict"},
	FormatRAW:     {"RAW", ".raw"},
	FormatMP4:     {"MP4", ".mp4"},
}

// IsValid reports whether f is one of the named FreeImage codes.
func (f ImageFormat) IsValid() bool {
	_, ok := imageFormats[f]
	return ok
}

func (f ImageFormat) String() string {
	if info, ok := imageFormats[f]; ok {
		return info.name
	}

	return fmt.Sprintf("ImageFormat(%d)", int32(f))
}

// Extension returns the conventional file extension for payloads of this
// format, or "" when the payload is not an encoded file.
func (f ImageFormat) Extension() string {
	return imageFormats[f].ext
}

// IsVideo reports whether payloads of this format are embedded video.
func (f ImageFormat) IsVideo() bool {
	return f == FormatMP4
}

// TexFormat is the pixel layout of raw (non-file) mipmap payloads.
type TexFormat int32

// Texture pixel formats.
const (
	TexFormatRGBA8888 TexFormat = 0
	TexFormatDXT5     TexFormat = 4
	TexFormatDXT3     TexFormat = 6
	TexFormatDXT1     TexFormat = 7
	TexFormatRG88     TexFormat = 8
	TexFormatR8       TexFormat = 9
)

var texFormatNames = map[TexFormat]string{
	TexFormatRGBA8888: "RGBA8888",
	TexFormatDXT5:     "DXT5",
	TexFormatDXT3:     "DXT3",
	TexFormatDXT1:     "DXT1",
	TexFormatRG88:     "RG88",
	TexFormatR8:       "R8",
}

// IsValid reports whether f is a known texture pixel format.
func (f TexFormat) IsValid() bool {
	_, ok := texFormatNames[f]
	return ok
}

func (f TexFormat) String() string {
	if name, ok := texFormatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("TexFormat(%d)", int32(f))
}

// ParseTexFormat resolves a case-insensitive format name such as "dxt5".
func ParseTexFormat(name string) (TexFormat, error) {
	for f, n := range texFormatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: texture format %q", ErrInvalidEnum, name)
}

// TexFlags is the texture header flag set.
type TexFlags uint32

// Texture header flags.
const (
	FlagNoInterpolation TexFlags = 1 << 0
	FlagClampUVs        TexFlags = 1 << 1
	FlagIsGIF           TexFlags = 1 << 2
)

// Has reports whether all bits of flag are set.
func (f TexFlags) Has(flag TexFlags) bool {
	return f&flag == flag
}

// bcnFormat maps block-compressed texture formats to the bcn codec.
func bcnFormat(f TexFormat) bcn.Format {
	switch f {
	case TexFormatDXT1:
		return bcn.FormatDXT1
	case TexFormatDXT3:
		return bcn.FormatDXT3
	case TexFormatDXT5:
		return bcn.FormatDXT5
	case TexFormatRGBA8888:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

// expectedDataLength returns the raw payload size of a width x height
// mipmap, or -1 for formats without a fixed size.
func expectedDataLength(format TexFormat, width, height int) int {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4
	switch format {
	case TexFormatDXT1:
		return blocksW * blocksH * 8
	case TexFormatDXT3, TexFormatDXT5:
		return blocksW * blocksH * 16
	case TexFormatRGBA8888:
		return width * height * 4
	case TexFormatRG88:
		return width * height * 2
	case TexFormatR8:
		return width * height
	default:
		return -1
	}
}
