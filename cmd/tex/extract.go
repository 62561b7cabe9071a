package main

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/tex"
	"github.com/woozymasta/tex/internal/logger"
)

func extractCmd(opts *globalOptions) *cli.Command {
	var outPath string

	return &cli.Command{
		Name:      "extract",
		Usage:     "Decode the first mipmap of a .tex file to PNG",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output PNG path",
				Destination: &outPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: missing FILE argument", 1)
			}

			readOpts, err := opts.readOptions(ctx)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			t, err := tex.ReadTextureFile(path, readOpts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Debug("decoding mipmap",
				"file", path,
				"format", t.Header.Format.String(),
				"image_format", t.Container.ImageFormat.String(),
			)

			img, err := t.Image(readOpts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if err := writePNG(outPath, img); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			b := img.Bounds()
			log.Info("extracted", "file", path, "out", outPath, "width", b.Dx(), "height", b.Dy())
			return nil
		},
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	bw := bufio.NewWriter(f)
	if err := png.Encode(bw, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return f.Close()
}
