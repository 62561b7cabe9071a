package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/tex"
	"github.com/woozymasta/tex/internal/logger"
)

type mipmapReport struct {
	Width            int32 `json:"width"`
	Height           int32 `json:"height"`
	ByteCount        int   `json:"byte_count"`
	DecompressedSize int32 `json:"decompressed_size,omitempty"`
	Compressed       bool  `json:"compressed"`
}

type imageReport struct {
	Mipmaps []mipmapReport `json:"mipmaps"`
}

type infoReport struct {
	File           string        `json:"file"`
	Format         string        `json:"format"`
	Flags          uint32        `json:"flags"`
	TextureWidth   int32         `json:"texture_width"`
	TextureHeight  int32         `json:"texture_height"`
	ImageWidth     int32         `json:"image_width"`
	ImageHeight    int32         `json:"image_height"`
	ContainerMagic string        `json:"container_magic"`
	Version        int32         `json:"version"`
	ImageFormat    string        `json:"image_format"`
	Images         []imageReport `json:"images"`
	FrameCount     int           `json:"frame_count,omitempty"`
	Animated       bool          `json:"animated"`
}

func newInfoReport(path string, t *tex.Texture) infoReport {
	r := infoReport{
		File:           path,
		Format:         t.Header.Format.String(),
		Flags:          uint32(t.Header.Flags),
		TextureWidth:   t.Header.TextureWidth,
		TextureHeight:  t.Header.TextureHeight,
		ImageWidth:     t.Header.ImageWidth,
		ImageHeight:    t.Header.ImageHeight,
		ContainerMagic: t.Container.Magic,
		Version:        int32(t.Container.Version),
		ImageFormat:    t.Container.ImageFormat.String(),
		Images:         make([]imageReport, 0, len(t.Container.Images)),
		Animated:       t.IsAnimated(),
	}
	if t.FrameInfo != nil {
		r.FrameCount = len(t.FrameInfo.Frames)
	}

	for _, img := range t.Container.Images {
		ir := imageReport{Mipmaps: make([]mipmapReport, 0, len(img.Mipmaps))}
		for _, m := range img.Mipmaps {
			ir.Mipmaps = append(ir.Mipmaps, mipmapReport{
				Width:            m.Width,
				Height:           m.Height,
				ByteCount:        len(m.Data),
				DecompressedSize: m.DecompressedSize,
				Compressed:       m.IsCompressed,
			})
		}
		r.Images = append(r.Images, ir)
	}

	return r
}

func (r infoReport) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w,
		"file:      %s\nformat:    %s\nflags:     %#x\ntexture:   %dx%d\nimage:     %dx%d\ncontainer: %s (%s)\n",
		r.File, r.Format, r.Flags,
		r.TextureWidth, r.TextureHeight, r.ImageWidth, r.ImageHeight,
		r.ContainerMagic, r.ImageFormat,
	); err != nil {
		return err
	}
	if r.Animated {
		if _, err := fmt.Fprintf(w, "frames:    %d\n", r.FrameCount); err != nil {
			return err
		}
	}

	for i, img := range r.Images {
		if _, err := fmt.Fprintf(w, "image %d: %d mipmaps\n", i, len(img.Mipmaps)); err != nil {
			return err
		}
		for j, m := range img.Mipmaps {
			state := "raw"
			if m.Compressed {
				state = fmt.Sprintf("lz4 -> %d", m.DecompressedSize)
			}
			if _, err := fmt.Fprintf(w, "  mip %d: %dx%d %d bytes (%s)\n", j, m.Width, m.Height, m.ByteCount, state); err != nil {
				return err
			}
		}
	}

	return nil
}

func infoCmd(opts *globalOptions, stdout io.Writer) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header, container and mipmap layout of a .tex file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("error: missing FILE argument", 1)
			}

			readOpts, err := opts.readOptions(ctx)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			logger.FromContext(ctx).Debug("reading texture", "file", path)
			t, err := tex.ReadTextureFile(path, readOpts)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			report := newInfoReport(path, t)
			if !asJSON {
				return report.writeText(stdout)
			}

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: encode report: %v", err), 1)
			}
			_, err = fmt.Fprintln(stdout, string(out))
			return err
		},
	}
}
