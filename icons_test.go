package docshell

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/docshell/views"
)

func TestRenderIconPNG(t *testing.T) {
	data, err := RenderIconPNG(views.DefaultLogo, 32)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 32, img.Bounds().Dx())
	require.Equal(t, 32, img.Bounds().Dy())

	// The circle is centred on the bottom-right corner.
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "top-left corner must be transparent")

	r, g, b, a := img.At(31, 31).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(50))
	assert.Less(t, b>>8, uint32(50))
	assert.Greater(t, a>>8, uint32(200))
}

func TestRenderIconPNGRejectsBadInput(t *testing.T) {
	_, err := RenderIconPNG(views.DefaultLogo, 0)
	require.Error(t, err)

	_, err = RenderIconPNG(views.Logo{Size: 10, Radius: 4, Fill: "not-a-colour"}, 16)
	require.ErrorContains(t, err, "unsupported fill colour")
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{"Red", color.RGBA{R: 0xff, A: 0xff}},
		{"#0f0", color.RGBA{G: 0xff, A: 0xff}},
		{"#336699", color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#zzzzzz", "nope"} {
		_, err := parseColor(bad)
		assert.Error(t, err, bad)
	}
}
