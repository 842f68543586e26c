package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
	"receipt-service/internal/render/text"
)

var white = color.RGBA{255, 255, 255, 255}
var black = color.RGBA{0, 0, 0, 255}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{})
	require.NoError(t, err)
	return r
}

func sampleReceipt() *model.ReceiptData {
	change := decimal.RequireFromString("6.50")
	return &model.ReceiptData{
		StoreName:   "Big Store",
		StoreInfo:   model.StoreInfo{Address: "12 Tahrir Sq", Phone: "+20 100 000 0000"},
		ReceiptInfo: model.ReceiptInfo{Date: "2024-01-15 10:30", ReceiptNumber: "000123", Cashier: "Ahmed"},
		Items: []model.Item{
			{Name: "Coffee", Qty: decimal.NewFromInt(1), Price: decimal.RequireFromString("10.00")},
			{Name: "Water", Qty: decimal.NewFromInt(1), Price: decimal.RequireFromString("3.50")},
		},
		Subtotal:        decimal.RequireFromString("13.50"),
		Total:           decimal.RequireFromString("13.50"),
		Payment:         model.Payment{Method: "Cash", Change: &change},
		ThankYouMessage: "Thank you!",
		Barcode:         &model.Barcode{Value: "000123"},
		Website:         "www.bigstore.example",
	}
}

func TestRenderHeightMatchesPlan(t *testing.T) {
	r := newRenderer(t)

	img, err := r.Render(&model.ReceiptData{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 355), img.Bounds())

	data := sampleReceipt()
	plan, err := r.Plan(data)
	require.NoError(t, err)
	img, err = r.Render(data)
	require.NoError(t, err)
	assert.Equal(t, plan.Height, img.Bounds().Dy())
}

func TestRenderCustomWidth(t *testing.T) {
	r, err := New(Options{Width: 384})
	require.NoError(t, err)
	assert.Equal(t, 384, r.Width())

	img, err := r.Render(&model.ReceiptData{})
	require.NoError(t, err)
	assert.Equal(t, 384, img.Bounds().Dx())
}

func TestRenderPaintsRulesAndLogo(t *testing.T) {
	r := newRenderer(t)
	img, err := r.Render(&model.ReceiptData{Logo: true})
	require.NoError(t, err)

	// logo frame at y=30, inset white
	assert.Equal(t, black, img.RGBAAt(256-50+2, 30+2))
	assert.Equal(t, white, img.RGBAAt(256, 30+50))
	// first divider sits right below the logo
	assert.Equal(t, black, img.RGBAAt(256, 140))
	assert.Equal(t, white, img.RGBAAt(5, 140))
	assert.Equal(t, white, img.RGBAAt(507, 140))
}

func TestRenderPNGIsDeterministic(t *testing.T) {
	r := newRenderer(t)

	a, err := r.RenderPNG(sampleReceipt())
	require.NoError(t, err)
	b, err := r.RenderPNG(sampleReceipt())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	img, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
}

func TestBarcodeFormsRenderIdentically(t *testing.T) {
	r := newRenderer(t)

	bare := sampleReceipt()
	explicit := sampleReceipt()
	explicit.Barcode = &model.Barcode{Value: "000123", Format: model.BarcodeCODE128}

	plan, err := r.Plan(bare)
	require.NoError(t, err)
	var tileY int
	for _, pl := range plan.Placements {
		if pl.Section == "barcode" {
			tileY = pl.Y
		}
	}
	require.NotZero(t, tileY)

	a, err := r.Render(bare)
	require.NoError(t, err)
	b, err := r.Render(explicit)
	require.NoError(t, err)

	tile := image.Rect(31, tileY, 31+450, tileY+140)
	sa := a.SubImage(tile).(*image.RGBA)
	sb := b.SubImage(tile).(*image.RGBA)
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		for x := tile.Min.X; x < tile.Max.X; x++ {
			require.Equal(t, sa.RGBAAt(x, y), sb.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}

	// bars are drawn below the tile margin
	inked := false
	for x := tile.Min.X; x < tile.Max.X; x++ {
		if a.RGBAAt(x, tileY+50) == black {
			inked = true
			break
		}
	}
	assert.True(t, inked)
}

func TestRenderBarcodeFailure(t *testing.T) {
	r := newRenderer(t)
	data := sampleReceipt()
	data.Barcode = &model.Barcode{Value: "not-digits", Format: model.BarcodeEAN8}

	_, err := r.RenderPNG(data)
	require.Error(t, err)
	assert.True(t, ierr.IsRender(err))
}

func TestNewWithMissingFont(t *testing.T) {
	_, err := New(Options{Fonts: text.FontPaths{ArabicBold: "/nonexistent/font.ttf"}})
	require.Error(t, err)
	assert.True(t, ierr.IsRender(err))
}

func TestRenderDoesNotModifyInput(t *testing.T) {
	r := newRenderer(t)
	data := sampleReceipt()
	before := *data
	_, err := r.Render(data)
	require.NoError(t, err)
	assert.Equal(t, before, *data)
}
