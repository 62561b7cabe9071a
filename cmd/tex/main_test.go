package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/tex"
)

// runApp executes the CLI with args and returns captured stdout and stderr.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(context.Background(), append([]string{"tex"}, args...))

	return stdout.String(), stderr.String(), err
}

// writeTestPNG stores a small opaque gradient and returns its path.
func writeTestPNG(t *testing.T, dir string) (string, *image.NRGBA) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 32), G: uint8(y * 32), B: 0x80, A: 0xff})
		}
	}

	path := filepath.Join(dir, "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	return path, img
}

// TestPackInfoExtract builds a texture from a PNG, inspects it and decodes it back.
func TestPackInfoExtract(t *testing.T) {
	dir := t.TempDir()
	in, src := writeTestPNG(t, dir)
	texPath := filepath.Join(dir, "out.tex")
	outPNG := filepath.Join(dir, "out.png")

	_, stderr, err := runApp(t, "--log-format", "json", "pack", "--format", "rgba8888", "--clamp-uvs", "--out", texPath, in)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"packed"`)

	stdout, _, err := runApp(t, "info", "--json", texPath)
	require.NoError(t, err)

	var report infoReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "RGBA8888", report.Format)
	assert.Equal(t, "TEXB0003", report.ContainerMagic)
	assert.Equal(t, int32(3), report.Version)
	assert.Equal(t, uint32(tex.FlagClampUVs), report.Flags)
	assert.Equal(t, int32(8), report.ImageWidth)
	assert.Equal(t, int32(8), report.ImageHeight)
	assert.False(t, report.Animated)
	require.Len(t, report.Images, 1)
	require.NotEmpty(t, report.Images[0].Mipmaps)
	assert.Equal(t, int32(8), report.Images[0].Mipmaps[0].Width)

	_, _, err = runApp(t, "--log-level", "error", "extract", "--out", outPNG, texPath)
	require.NoError(t, err)

	f, err := os.Open(outPNG)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, src.Bounds().Size(), got.Bounds().Size())
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := src.NRGBAAt(x, y)
			r, g, b, a := got.At(got.Bounds().Min.X+x, got.Bounds().Min.Y+y).RGBA()
			assert.Equal(t, want, color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}, "pixel %d,%d", x, y)
		}
	}
}

func TestInfoText(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir)
	texPath := filepath.Join(dir, "out.tex")

	_, _, err := runApp(t, "pack", "--format", "dxt5", "--mipmaps", "2", "--out", texPath, in)
	require.NoError(t, err)

	stdout, _, err := runApp(t, "info", texPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "format:    DXT5")
	assert.Contains(t, stdout, "TEXB0003")
	assert.Contains(t, stdout, "image 0: 2 mipmaps")
	assert.Contains(t, stdout, "mip 0: 8x8")
}

func TestPackUncompressedV1(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir)
	texPath := filepath.Join(dir, "v1.tex")

	_, _, err := runApp(t, "pack", "--format", "r8", "--container-version", "1", "--out", texPath, in)
	require.NoError(t, err)

	tx, err := tex.ReadTextureFile(texPath, nil)
	require.NoError(t, err)
	assert.Equal(t, tex.Version1, tx.Container.Version)
	assert.Equal(t, tex.TexFormatR8, tx.Header.Format)
	for _, m := range tx.Container.Images[0].Mipmaps {
		assert.False(t, m.IsCompressed)
	}
}

func TestConfigLimits(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir)
	texPath := filepath.Join(dir, "out.tex")
	cfgPath := filepath.Join(dir, "limits.yaml")

	_, _, err := runApp(t, "pack", "--format", "rgba8888", "--out", texPath, in)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_mipmap_count: 1\n"), 0o600))

	_, _, err = runApp(t, "--config", cfgPath, "info", texPath)
	require.Error(t, err)
	assert.ErrorContains(t, err, tex.ErrUnsafeInput.Error())

	_, _, err = runApp(t, "--config", filepath.Join(dir, "missing.yaml"), "info", texPath)
	require.Error(t, err)
	assert.ErrorContains(t, err, tex.ErrLoadLimits.Error())
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	in, _ := writeTestPNG(t, dir)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "info without file", args: []string{"info"}, want: "missing FILE"},
		{name: "extract without file", args: []string{"extract", "--out", filepath.Join(dir, "x.png")}, want: "missing FILE"},
		{name: "pack bad format", args: []string{"pack", "--format", "bc7", "--out", filepath.Join(dir, "x.tex"), in}, want: tex.ErrInvalidEnum.Error()},
		{name: "info not a texture", args: []string{"info", in}, want: tex.ErrReadMagic.Error()},
		{name: "bad log format", args: []string{"--log-format", "xml", "info", in}, want: "unknown log format"},
		{name: "bad log level", args: []string{"--log-level", "loud", "info", in}, want: "unknown log level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runApp(t, tc.args...)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}
