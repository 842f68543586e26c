package escpos

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
)

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestDark(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(2, 0, color.RGBA{0, 0, 0, 0}) // transparent
	img.SetRGBA(3, 0, color.RGBA{100, 100, 100, 255})
	img.SetRGBA(4, 0, color.RGBA{200, 200, 200, 255})

	assert.True(t, Dark(img, 0, 0))
	assert.False(t, Dark(img, 1, 0))
	assert.False(t, Dark(img, 2, 0))
	assert.True(t, Dark(img, 3, 0))
	assert.False(t, Dark(img, 4, 0))
}

func TestBuildPrintJobDensities(t *testing.T) {
	tests := []struct {
		density model.Density
		m       byte
		bands   int
		column  int
	}{
		{model.DensitySingle8, 0x00, 3, 1},
		{model.DensityDouble8, 0x01, 3, 1},
		{model.DensitySingle24, 0x20, 1, 3},
		{model.DensityDouble24, 0x21, 1, 3},
		{"", 0x21, 1, 3},
	}

	img := blank(300, 20)
	for _, tt := range tests {
		t.Run(string(tt.density), func(t *testing.T) {
			job, err := BuildPrintJob(img, tt.density, nil)
			require.NoError(t, err)

			prefix := []byte{0x1B, 0x40, 0x1B, 0x61, 0x01, 0x1B, 0x33, 0x00}
			require.True(t, bytes.HasPrefix(job, prefix))

			band := append([]byte{0x1B, 0x2A, tt.m, 300 % 256, 300 / 256}, make([]byte, 300*tt.column)...)
			band = append(band, 0x0A)
			assert.Equal(t, tt.bands, bytes.Count(job, band[:5]))
			assert.Equal(t, band, job[len(prefix):len(prefix)+len(band)])

			suffix := []byte{0x1B, 0x32, 0x0A, 0x0A, 0x0A, 0x1D, 0x56, 0x00}
			assert.True(t, bytes.HasSuffix(job, suffix))
			assert.Equal(t, len(prefix)+tt.bands*len(band)+len(suffix), len(job))
		})
	}
}

func TestBuildPrintJobUnknownDensity(t *testing.T) {
	_, err := BuildPrintJob(blank(8, 8), "q48", nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildPrintJobAppendsKick(t *testing.T) {
	job, err := BuildPrintJob(blank(8, 8), model.DensityDouble24, DefaultKick())
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(job, []byte{0x1D, 0x56, 0x00, 0x1B, 0x70, 0x00, 0x19, 0xFA, 0x0A}))
}

func TestWriteBitImageBitOrder(t *testing.T) {
	img := blank(2, 10)
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255}) // top dot of column 0
	img.SetRGBA(1, 9, color.RGBA{0, 0, 0, 255}) // second band, row 1 of column 1

	var buf bytes.Buffer
	WriteBitImage(&buf, img, Mode{M: 0x01, Dots: 8})

	want := []byte{
		0x1B, 0x2A, 0x01, 2, 0, 0x80, 0x00, 0x0A,
		0x1B, 0x2A, 0x01, 2, 0, 0x00, 0x40, 0x0A,
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestWriteBitImage24Dot(t *testing.T) {
	img := blank(1, 24)
	img.SetRGBA(0, 8, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(0, 23, color.RGBA{0, 0, 0, 255})

	var buf bytes.Buffer
	WriteBitImage(&buf, img, Mode{M: 0x21, Dots: 24})
	assert.Equal(t, []byte{0x1B, 0x2A, 0x21, 1, 0, 0x00, 0x80, 0x01, 0x0A}, buf.Bytes())
}

func TestParseKickCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    []byte
		wantErr bool
	}{
		{"default", "", []byte{0x1B, 0x70, 0x00, 0x19, 0xFA, 0x0A}, false},
		{"five bytes get LF", "27,112,0,148,49", []byte{27, 112, 0, 148, 49, 0x0A}, false},
		{"spaces allowed", " 27, 112, 1, 50, 50 ", []byte{27, 112, 1, 50, 50, 0x0A}, false},
		{"six bytes as given", "27,112,0,25,250,10", []byte{27, 112, 0, 25, 250, 10}, false},
		{"too short", "27,112,0", nil, true},
		{"too long", "27,112,0,25,250,10,10", nil, true},
		{"out of range", "27,112,0,256,49", nil, true},
		{"negative", "27,112,-1,25,49", nil, true},
		{"not a number", "27,p,0,25,49", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKickCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKickCodesDiffer(t *testing.T) {
	custom, err := ParseKickCode("27,112,0,148,49")
	require.NoError(t, err)
	assert.Len(t, custom, 6)
	assert.Len(t, DefaultKick(), 6)
	assert.NotEqual(t, DefaultKick(), custom)
}

func TestDefaultKickIsACopy(t *testing.T) {
	k := DefaultKick()
	k[0] = 0
	assert.Equal(t, byte(0x1B), DefaultKick()[0])
}
