package text

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	fonts, err := DefaultFontSet()
	require.NoError(t, err)
	return NewEngine(fonts)
}

func whiteSurface(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

// inkBounds returns the bounding box of non-white pixels
func inkBounds(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestDrawWidthFollowsTextAndSize(t *testing.T) {
	e := newTestEngine(t)

	inkWidth := func(s string, size float64) int {
		img := whiteSurface(512, 120)
		require.NoError(t, e.Draw(img, s, 10, 90, BoldStyle(size, AlignLeft)))
		return inkBounds(img).Dx()
	}

	empty := whiteSurface(512, 120)
	require.NoError(t, e.Draw(empty, "", 10, 90, BoldStyle(28, AlignLeft)))
	assert.True(t, inkBounds(empty).Empty())

	short := inkWidth("Qty", 28)
	long := inkWidth("Quantity", 28)
	assert.Greater(t, short, 0)
	assert.Greater(t, long, short)

	bigger := inkWidth("Qty", 56)
	assert.InDelta(t, short*2, bigger, 6)
}

func TestDrawAlignment(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		align Align
		x     int
		check func(t *testing.T, ink image.Rectangle)
	}{
		{
			name:  "left edge at x",
			align: AlignLeft,
			x:     10,
			check: func(t *testing.T, ink image.Rectangle) {
				assert.InDelta(t, 10, ink.Min.X, 4)
			},
		},
		{
			name:  "right edge at x",
			align: AlignRight,
			x:     502,
			check: func(t *testing.T, ink image.Rectangle) {
				assert.InDelta(t, 502, ink.Max.X, 4)
			},
		},
		{
			name:  "centered on x",
			align: AlignCenter,
			x:     256,
			check: func(t *testing.T, ink image.Rectangle) {
				assert.InDelta(t, 256, (ink.Min.X+ink.Max.X)/2, 4)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := whiteSurface(512, 100)
			require.NoError(t, e.Draw(img, "TOTAL", tt.x, 60, BoldStyle(28, tt.align)))

			ink := inkBounds(img)
			require.False(t, ink.Empty())
			assert.LessOrEqual(t, ink.Max.Y, 62, "ink should sit on the baseline")
			tt.check(t, ink)
		})
	}
}

func TestDrawIsDeterministic(t *testing.T) {
	e := newTestEngine(t)

	a := whiteSurface(512, 80)
	b := whiteSurface(512, 80)
	require.NoError(t, e.Draw(a, "Receipt #: 42", 10, 40, BoldStyle(26, AlignLeft)))
	require.NoError(t, e.Draw(b, "Receipt #: 42", 10, 40, BoldStyle(26, AlignLeft)))
	assert.Equal(t, a.Pix, b.Pix)
}

func TestDrawOutsideSurface(t *testing.T) {
	e := newTestEngine(t)
	img := whiteSurface(100, 20)
	assert.NoError(t, e.Draw(img, "clipped", 10, 500, BoldStyle(22, AlignLeft)))
	assert.True(t, inkBounds(img).Empty())
}

func TestDrawArabicWithoutArabicFace(t *testing.T) {
	e := newTestEngine(t)
	img := whiteSurface(512, 100)
	assert.NoError(t, e.Draw(img, "شكرا لزيارتكم", 256, 60, BoldStyle(34, AlignCenter).RTL()))
}

func TestBaseDirection(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dir  Direction
		want Direction
	}{
		{"latin", "Big Store", LTR, LTR},
		{"arabic first strong", "متجر", LTR, RTL},
		{"digits then latin", "123 Main St", LTR, LTR},
		{"explicit rtl wins", "Big Store", RTL, RTL},
		{"no strong characters", "2024-01-15", LTR, LTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, baseDirection(tt.in, tt.dir))
		})
	}
}

func TestVisualRuns(t *testing.T) {
	runs := visualRuns("Big Store", LTR)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].rtl)
	assert.Equal(t, "Big Store", runs[0].text)

	runs = visualRuns("متجر", RTL)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].rtl)
}

func TestHasArabic(t *testing.T) {
	assert.True(t, hasArabic("Total الإجمالي"))
	assert.False(t, hasArabic("Total 12.50"))
}
