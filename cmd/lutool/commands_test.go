package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/lut"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	convertFormat = ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", write_config(t, "precision: 8\n")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	p := func(name string) string { return filepath.Join(dir, name) }
	load := func(name string) *lut.LUT {
		l, err := lut.FromFile(p(name))
		require.NoError(t, err)
		return l
	}

	_, err := run(t, "generate", "identity", p("id.cube"), "--size", "5")
	require.NoError(t, err)
	assert.True(t, load("id.cube").EqualsIdentityLUT())

	out, err := run(t, "info", p("id.cube"))
	require.NoError(t, err)
	assert.Contains(t, out, "size:     5")
	assert.Contains(t, out, "identity: true")

	_, err = run(t, "convert", p("id.cube"), p("id.3dl"))
	require.NoError(t, err)
	assert.Equal(t, "12", load("id.3dl").PassthroughFileOptions()["integerOutputBitDepth"])

	out, err = run(t, "compare", p("id.cube"), p("id.3dl"))
	require.NoError(t, err)
	assert.Contains(t, out, "equal:          false")
	assert.Contains(t, out, "same essence:   false")

	_, err = run(t, "adjust", p("id.cube"), p("inv.cube"), "--invert")
	require.NoError(t, err)
	inv := load("inv.cube")
	assert.Equal(t, lut.Gray(1), inv.ColorAt(0, 0, 0))
	assert.Equal(t, lut.Gray(0), inv.ColorAt(4, 4, 4))

	_, err = run(t, "resize", p("inv.cube"), p("small.cube"), "--size", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, load("small.cube").Size())

	_, err = run(t, "combine", p("inv.cube"), p("inv.cube"), p("back.cube"))
	require.NoError(t, err)
	assert.True(t, load("back.cube").EqualsEssence(lut.Identity(5, 0, 1), false, true, true))

	_, err = run(t, "generate", "hue", p("hue.png"), "--size", "16", "--degrees", "90")
	require.NoError(t, err)
	assert.Equal(t, 16, load("hue.png").Size())

	out, err = run(t, "formats")
	require.NoError(t, err)
	for _, id := range []string{"cube", "3dl", "hald-png", "hald-tiff"} {
		assert.Contains(t, out, id)
	}

	_, err = run(t, "generate", "nope", p("x.cube"))
	assert.Error(t, err)
	_, err = run(t, "info", p("missing.cube"))
	assert.Error(t, err)
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 128, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.png"), b.Bytes(), 0o644))
	require.NoError(t, lut.Identity(5, 0, 1).Inverted().WriteFile(filepath.Join(dir, "inv.cube"), "", nil, false))

	_, err := run(t, "apply", filepath.Join(dir, "inv.cube"), filepath.Join(dir, "in.png"), filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	f, err := os.Open(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	defer f.Close()
	res, err := png.Decode(f)
	require.NoError(t, err)
	at := func(x int) color.NRGBA { return color.NRGBAModel.Convert(res.At(x, 0)).(color.NRGBA) }
	assert.Equal(t, color.NRGBA{0, 255, 127, 255}, at(0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, at(1))
}
