package main

import (
	"bufio"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bcn"

	"github.com/woozymasta/tex"
	"github.com/woozymasta/tex/internal/logger"
)

func packCmd() *cli.Command {
	var (
		outPath          string
		formatName       string
		maxMipMaps       int
		containerVersion int
		noCompress       bool
		clampUVs         bool
		noInterpolation  bool
	)

	return &cli.Command{
		Name:      "pack",
		Usage:     "Build a .tex file from a PNG or JPEG image",
		ArgsUsage: "IMAGE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output .tex path",
				Destination: &outPath,
				Required:    true,
			},
			&cli.StringFlag{Name: "format", Usage: "rgba8888, dxt1, dxt3, dxt5, rg88 or r8", Value: "dxt5", Destination: &formatName},
			&cli.IntFlag{Name: "mipmaps", Usage: "limit the mip chain (0 = full chain)", Destination: &maxMipMaps},
			&cli.IntFlag{Name: "container-version", Usage: "container version 1..3", Value: 3, Destination: &containerVersion},
			&cli.BoolFlag{Name: "no-compress", Usage: "store raw mipmap payloads", Destination: &noCompress},
			&cli.BoolFlag{Name: "clamp-uvs", Usage: "set the clamp UVs header flag", Destination: &clampUVs},
			&cli.BoolFlag{Name: "no-interpolation", Usage: "set the no interpolation header flag", Destination: &noInterpolation},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: missing IMAGE argument", 1)
			}

			format, err := tex.ParseTexFormat(formatName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			img, err := readImageFile(path)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			writeOpts := &tex.WriteOptions{
				Format:     format,
				Version:    tex.ContainerVersion(containerVersion), //nolint:gosec // validated by NewTexture
				MaxMipMaps: maxMipMaps,
				Compress:   !noCompress && containerVersion != int(tex.Version1),
				EncodeOptions: &bcn.EncodeOptions{
					QualityLevel: bcn.QualityLevelFast,
				},
			}
			if clampUVs {
				writeOpts.Flags |= tex.FlagClampUVs
			}
			if noInterpolation {
				writeOpts.Flags |= tex.FlagNoInterpolation
			}

			if err := tex.WriteWithOptions(img, outPath, writeOpts); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			b := img.Bounds()
			log.Info("packed",
				"image", path,
				"out", outPath,
				"format", format.String(),
				"width", b.Dx(),
				"height", b.Dy(),
			)
			return nil
		},
	}
}

func readImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	return img, nil
}
