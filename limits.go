package tex

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default safety ceilings applied to counts and lengths read from a stream.
const (
	DefaultMaxImageCount      = 100
	DefaultMaxMipmapCount     = 32
	DefaultMaxMipmapByteCount = 256 << 20
	DefaultMaxFrameCount      = 1024
)

// Limits bounds every count and length read from untrusted input. A count
// above its limit fails with ErrUnsafeInput before anything sized by it is
// allocated. Zero fields fall back to the defaults.
type Limits struct {
	MaxImageCount      int `yaml:"max_image_count"`
	MaxMipmapCount     int `yaml:"max_mipmap_count"`
	MaxMipmapByteCount int `yaml:"max_mipmap_byte_count"`
	MaxFrameCount      int `yaml:"max_frame_count"`
}

// DefaultLimits returns the built-in safety ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxImageCount:      DefaultMaxImageCount,
		MaxMipmapCount:     DefaultMaxMipmapCount,
		MaxMipmapByteCount: DefaultMaxMipmapByteCount,
		MaxFrameCount:      DefaultMaxFrameCount,
	}
}

// withDefaults fills unset (non-positive) fields from DefaultLimits.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxImageCount <= 0 {
		l.MaxImageCount = d.MaxImageCount
	}
	if l.MaxMipmapCount <= 0 {
		l.MaxMipmapCount = d.MaxMipmapCount
	}
	if l.MaxMipmapByteCount <= 0 {
		l.MaxMipmapByteCount = d.MaxMipmapByteCount
	}
	if l.MaxFrameCount <= 0 {
		l.MaxFrameCount = d.MaxFrameCount
	}
	return l
}

// LoadLimits reads limits from a YAML file. Keys missing from the file keep
// their default values.
func LoadLimits(path string) (Limits, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("%w: %q: %w", ErrLoadLimits, path, err)
	}

	var l Limits
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, fmt.Errorf("%w: %q: %w", ErrLoadLimits, path, err)
	}

	return l.withDefaults(), nil
}
