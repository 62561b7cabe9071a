package tex

import (
	"fmt"
	"io"
)

// Frame info container tags.
const (
	FrameInfoMagicV1 = "TEXS0001"
	FrameInfoMagicV2 = "TEXS0002"
	FrameInfoMagicV3 = "TEXS0003"
)

// FrameInfo places one animation frame inside an image of the container.
type FrameInfo struct {
	ImageID   int32
	FrameTime float32
	X         float32
	Y         float32
	Width     float32
	WidthY    float32
	HeightX   float32
	Height    float32
}

// FrameInfoContainer holds the frame table of an animated (GIF) texture.
type FrameInfoContainer struct {
	Magic  string
	Frames []FrameInfo
	// GIFWidth and GIFHeight are only stored by TEXS0003.
	GIFWidth  int32
	GIFHeight int32
}

func readFrameInfoContainer(r io.Reader, limits Limits) (*FrameInfoContainer, error) {
	magic, err := readLPString(r, magicMaxLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMagic, err)
	}

	var readFrame func(io.Reader) (FrameInfo, error)
	switch magic {
	case FrameInfoMagicV1:
		readFrame = readFrameInfoV1
	case FrameInfoMagicV2, FrameInfoMagicV3:
		readFrame = readFrameInfoV2
	default:
		return nil, fmt.Errorf("%w: %q (expected %s..%s)", ErrUnknownMagic, magic, FrameInfoMagicV1, FrameInfoMagicV3)
	}

	count, err := readInt32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: frame count: %w", ErrReadHeader, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrFormat, count)
	}
	if int(count) > limits.MaxFrameCount {
		return nil, fmt.Errorf("%w: frame count %d exceeds limit %d", ErrUnsafeInput, count, limits.MaxFrameCount)
	}

	fc := &FrameInfoContainer{Magic: magic, Frames: make([]FrameInfo, 0, count)}
	if magic == FrameInfoMagicV3 {
		if fc.GIFWidth, err = readInt32(r); err != nil {
			return nil, fmt.Errorf("%w: gif width: %w", ErrReadHeader, err)
		}
		if fc.GIFHeight, err = readInt32(r); err != nil {
			return nil, fmt.Errorf("%w: gif height: %w", ErrReadHeader, err)
		}
	}

	for i := int32(0); i < count; i++ {
		f, err := readFrame(r)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %w", ErrReadFrameInfo, i, err)
		}
		fc.Frames = append(fc.Frames, f)
	}

	return fc, nil
}

// readFrameInfoV1 reads a frame whose rectangle is stored as int32 values.
func readFrameInfoV1(r io.Reader) (FrameInfo, error) {
	var f FrameInfo
	var err error
	if f.ImageID, err = readInt32(r); err != nil {
		return f, err
	}
	if f.FrameTime, err = readFloat32(r); err != nil {
		return f, err
	}

	for _, dst := range []*float32{&f.X, &f.Y, &f.Width, &f.WidthY, &f.HeightX, &f.Height} {
		v, err := readInt32(r)
		if err != nil {
			return f, err
		}
		*dst = float32(v)
	}

	return f, nil
}

func readFrameInfoV2(r io.Reader) (FrameInfo, error) {
	var f FrameInfo
	var err error
	if f.ImageID, err = readInt32(r); err != nil {
		return f, err
	}

	for _, dst := range []*float32{&f.FrameTime, &f.X, &f.Y, &f.Width, &f.WidthY, &f.HeightX, &f.Height} {
		if *dst, err = readFloat32(r); err != nil {
			return f, err
		}
	}

	return f, nil
}

func writeFrameInfoContainer(w io.Writer, fc *FrameInfoContainer) error {
	var writeFrame func(io.Writer, FrameInfo) error
	switch fc.Magic {
	case FrameInfoMagicV1:
		writeFrame = writeFrameInfoV1
	case FrameInfoMagicV2, FrameInfoMagicV3:
		writeFrame = writeFrameInfoV2
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMagic, fc.Magic)
	}

	if err := writeLPString(w, fc.Magic, magicMaxLength); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteMagic, err)
	}
	count, err := i32FromInt(len(fc.Frames))
	if err != nil {
		return err
	}
	if err := writeInt32(w, count); err != nil {
		return fmt.Errorf("%w: frame count: %w", ErrWriteHeader, err)
	}
	if fc.Magic == FrameInfoMagicV3 {
		if err := writeInt32(w, fc.GIFWidth); err != nil {
			return fmt.Errorf("%w: gif width: %w", ErrWriteHeader, err)
		}
		if err := writeInt32(w, fc.GIFHeight); err != nil {
			return fmt.Errorf("%w: gif height: %w", ErrWriteHeader, err)
		}
	}

	for i, f := range fc.Frames {
		if err := writeFrame(w, f); err != nil {
			return fmt.Errorf("%w: frame %d: %w", ErrWriteFrameInfo, i, err)
		}
	}

	return nil
}

func writeFrameInfoV1(w io.Writer, f FrameInfo) error {
	if err := writeInt32(w, f.ImageID); err != nil {
		return err
	}
	if err := writeFloat32(w, f.FrameTime); err != nil {
		return err
	}
	for _, v := range []float32{f.X, f.Y, f.Width, f.WidthY, f.HeightX, f.Height} {
		if err := writeInt32(w, int32(v)); err != nil {
			return err
		}
	}

	return nil
}

func writeFrameInfoV2(w io.Writer, f FrameInfo) error {
	if err := writeInt32(w, f.ImageID); err != nil {
		return err
	}
	for _, v := range []float32{f.FrameTime, f.X, f.Y, f.Width, f.WidthY, f.HeightX, f.Height} {
		if err := writeFloat32(w, v); err != nil {
			return err
		}
	}

	return nil
}
