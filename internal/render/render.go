// Package render draws receipts onto a white raster and encodes them as PNG.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
	"receipt-service/internal/numerals"
	"receipt-service/internal/render/layout"
	"receipt-service/internal/render/text"
)

// Options configures a Renderer
type Options struct {
	Width    int
	Fonts    text.FontPaths
	Numerals numerals.System
}

// Renderer turns ReceiptData into images. It holds no per render state and
// is safe for concurrent use.
type Renderer struct {
	env    layout.Env
	engine *text.Engine
}

// New loads fonts and creates a renderer
func New(opts Options) (*Renderer, error) {
	fonts, err := text.LoadFontSet(opts.Fonts)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Check the configured font paths").
			Mark(ierr.ErrRender)
	}

	width := opts.Width
	if width <= 0 {
		width = layout.DefaultWidth
	}

	return &Renderer{
		env:    layout.Env{Width: width, Digits: numerals.Formatter(opts.Numerals)},
		engine: text.NewEngine(fonts),
	}, nil
}

// Width returns the raster width in dots
func (r *Renderer) Width() int {
	return r.env.Width
}

// Plan runs the dry layout pass without drawing
func (r *Renderer) Plan(data *model.ReceiptData) (*layout.Plan, error) {
	return layout.Build(r.env, data)
}

// Render draws data onto a surface exactly as tall as its content
func (r *Renderer) Render(data *model.ReceiptData) (*image.RGBA, error) {
	plan, err := r.Plan(data)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, plan.Width, plan.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	p := painter{dst: img, engine: r.engine}
	for _, op := range plan.Ops() {
		if err := p.paint(op); err != nil {
			return nil, ierr.WithError(err).
				WithMessage("failed to draw receipt").
				Mark(ierr.ErrRender)
		}
	}
	return img, nil
}

// RenderPNG renders data and encodes it as PNG
func (r *Renderer) RenderPNG(data *model.ReceiptData) ([]byte, error) {
	img, err := r.Render(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to encode receipt image").
			Mark(ierr.ErrRender)
	}
	return buf.Bytes(), nil
}

// painter executes draw ops against one surface
type painter struct {
	dst    *image.RGBA
	engine *text.Engine
}

func (p painter) paint(op layout.Op) error {
	switch o := op.(type) {
	case layout.Text:
		return p.engine.Draw(p.dst, o.S, o.X, o.Y, o.Style)
	case layout.Rule:
		p.fill(o.Bounds(), color.Black)
	case layout.Fill:
		p.fill(o.Rect, o.Color)
	case layout.Picture:
		r := o.Bounds().Intersect(p.dst.Bounds())
		draw.Draw(p.dst, r, o.Src, o.Src.Bounds().Min.Add(r.Min.Sub(o.At)), draw.Src)
	}
	return nil
}

func (p painter) fill(r image.Rectangle, c color.Color) {
	draw.Draw(p.dst, r.Intersect(p.dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}
