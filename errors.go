package tex

import "errors"

var (
	// ErrFormat indicates a malformed or ill-sized field.
	ErrFormat = errors.New("malformed field")
	// ErrUnknownMagic indicates an unrecognized magic tag.
	ErrUnknownMagic = errors.New("unknown magic")
	// ErrInvalidEnum indicates a value outside a closed enum.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrUnsafeInput indicates a declared count or length exceeds a safety limit.
	ErrUnsafeInput = errors.New("unsafe input")
	// ErrTruncatedInput indicates the stream ended before a declared length was satisfied.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrIncompatibleCompression indicates a compressed mipmap cannot be stored in the target layout.
	ErrIncompatibleCompression = errors.New("compression not representable in container version")
	// ErrUnsupportedVersion indicates no mipmap layout exists for the container version.
	ErrUnsupportedVersion = errors.New("unsupported container version")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInconsistentContainer indicates container magic, version and format disagree.
	ErrInconsistentContainer = errors.New("inconsistent container")

	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrDecompressedSizeMismatch indicates decompressed data size differs from the declared size.
	ErrDecompressedSizeMismatch = errors.New("decompressed size mismatch")
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = errors.New("invalid target size")

	// ErrReadMagic indicates reading a magic tag failed.
	ErrReadMagic = errors.New("reading magic failed")
	// ErrReadHeader indicates reading a header field failed.
	ErrReadHeader = errors.New("reading header failed")
	// ErrReadImageCount indicates reading the image count failed.
	ErrReadImageCount = errors.New("reading image count failed")
	// ErrReadImage indicates reading an image failed.
	ErrReadImage = errors.New("reading image failed")
	// ErrReadMipmapCount indicates reading the mipmap count failed.
	ErrReadMipmapCount = errors.New("reading mipmap count failed")
	// ErrReadMipmap indicates reading a mipmap failed.
	ErrReadMipmap = errors.New("reading mipmap failed")
	// ErrReadFrameInfo indicates reading animation frame info failed.
	ErrReadFrameInfo = errors.New("reading frame info failed")
	// ErrReadContainer indicates reading the image container failed.
	ErrReadContainer = errors.New("reading image container failed")

	// ErrWriteMagic indicates writing a magic tag failed.
	ErrWriteMagic = errors.New("writing magic failed")
	// ErrWriteHeader indicates writing a header field failed.
	ErrWriteHeader = errors.New("writing header failed")
	// ErrWriteImage indicates writing an image failed.
	ErrWriteImage = errors.New("writing image failed")
	// ErrWriteMipmap indicates writing a mipmap failed.
	ErrWriteMipmap = errors.New("writing mipmap failed")
	// ErrWriteFrameInfo indicates writing animation frame info failed.
	ErrWriteFrameInfo = errors.New("writing frame info failed")
	// ErrWriteContainer indicates writing the image container failed.
	ErrWriteContainer = errors.New("writing image container failed")

	// ErrOpenFile indicates TEX file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates file creation failed.
	ErrCreateFile = errors.New("create file failed")
	// ErrLoadLimits indicates the limits config could not be loaded.
	ErrLoadLimits = errors.New("load limits failed")
	// ErrNoImages indicates the texture holds no image or mipmap to decode.
	ErrNoImages = errors.New("texture has no images")
	// ErrUnsupportedPixelFormat indicates the payload cannot be decoded into pixels.
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	// ErrPayloadSizeMismatch indicates a raw payload does not match its dimensions.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeMipmap indicates mipmap encoding failed.
	ErrEncodeMipmap = errors.New("encode mipmap failed")
	// ErrCompressMipmap indicates mipmap compression failed.
	ErrCompressMipmap = errors.New("compress mipmap failed")
	// ErrDecompressMipmap indicates mipmap decompression failed.
	ErrDecompressMipmap = errors.New("decompress mipmap failed")
)
