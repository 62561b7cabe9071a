package main

import (
	"context"

	"github.com/woozymasta/tex"
	"github.com/woozymasta/tex/internal/logger"
)

// readOptions builds decoder options from the --config file, if any.
func (o *globalOptions) readOptions(ctx context.Context) (*tex.ReadOptions, error) {
	if o.configPath == "" {
		return &tex.ReadOptions{Limits: tex.DefaultLimits()}, nil
	}

	limits, err := tex.LoadLimits(o.configPath)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("loaded limits",
		"config", o.configPath,
		"max_image_count", limits.MaxImageCount,
		"max_mipmap_count", limits.MaxMipmapCount,
		"max_mipmap_byte_count", limits.MaxMipmapByteCount,
		"max_frame_count", limits.MaxFrameCount,
	)

	return &tex.ReadOptions{Limits: limits}, nil
}
