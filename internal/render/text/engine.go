package text

import (
	"image"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Engine shapes and rasterizes single lines of mixed Arabic and Latin text.
// The shaper keeps internal caches, so calls are serialized.
type Engine struct {
	mu     sync.Mutex
	fonts  *FontSet
	shaper shaping.HarfbuzzShaper
}

// NewEngine creates a text engine over the given faces
func NewEngine(fonts *FontSet) *Engine {
	return &Engine{fonts: fonts}
}

type shapedRun struct {
	font *Font
	out  shaping.Output
}

type line struct {
	runs    []shapedRun
	advance fixed.Int26_6
}

var arabicLang = language.NewLanguage("ar")
var latinLang = language.NewLanguage("en")

func (e *Engine) shape(s string, st Style) line {
	size := fixed.Int26_6(math.Round(st.Size * 64))
	var l line
	for _, r := range visualRuns(s, baseDirection(s, st.Direction)) {
		arabic := hasArabic(r.text)
		runes := []rune(r.text)
		in := shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: di.DirectionLTR,
			Face:      e.fonts.face(arabic, st.Weight).face,
			Size:      size,
			Script:    language.Latin,
			Language:  latinLang,
		}
		if r.rtl {
			in.Direction = di.DirectionRTL
		}
		if arabic {
			in.Script = language.Arabic
			in.Language = arabicLang
		}

		out := e.shaper.Shape(in)
		l.runs = append(l.runs, shapedRun{font: e.fonts.face(arabic, st.Weight), out: out})
		l.advance += absFixed(out.Advance)
	}
	return l
}

// Draw paints s in black onto dst with its baseline at y. x is the left
// edge, center or right edge depending on st.Align.
func (e *Engine) Draw(dst *image.RGBA, s string, x, y int, st Style) error {
	if s == "" {
		return nil
	}

	e.mu.Lock()
	l := e.shape(s, st)
	e.mu.Unlock()

	width := fixedToFloat(l.advance)
	penX := float64(x)
	switch st.Align {
	case AlignCenter:
		penX -= width / 2
	case AlignRight:
		penX -= width
	}

	// Rasterize into a band around the baseline, clipped to the surface.
	band := image.Rect(
		dst.Bounds().Min.X,
		y-int(math.Ceil(st.Size*1.5)),
		dst.Bounds().Max.X,
		y+int(math.Ceil(st.Size*0.75)),
	).Intersect(dst.Bounds())
	if band.Empty() {
		return nil
	}

	z := vector.NewRasterizer(band.Dx(), band.Dy())
	ppem := fixed.Int26_6(math.Round(st.Size * 64))
	var buf sfnt.Buffer
	originX := float32(penX) - float32(band.Min.X)
	originY := float32(y - band.Min.Y)

	pen := fixed.Int26_6(0)
	for _, r := range l.runs {
		for _, g := range r.out.Glyphs {
			segments, err := r.font.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
			if err != nil {
				return err
			}
			gx := originX + float32(fixedToFloat(pen+g.XOffset))
			gy := originY - float32(fixedToFloat(g.YOffset))
			appendOutline(z, segments, gx, gy)
			pen += g.XAdvance
		}
	}

	z.Draw(dst, band, image.Black, image.Point{})
	return nil
}

func appendOutline(z *vector.Rasterizer, segments sfnt.Segments, x, y float32) {
	open := false
	for _, seg := range segments {
		// Args are 26.6 fixed point with y pointing down.
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(px(seg.Args[0].X, x), px(seg.Args[0].Y, y))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(px(seg.Args[0].X, x), px(seg.Args[0].Y, y))
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(
				px(seg.Args[0].X, x), px(seg.Args[0].Y, y),
				px(seg.Args[1].X, x), px(seg.Args[1].Y, y),
			)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(
				px(seg.Args[0].X, x), px(seg.Args[0].Y, y),
				px(seg.Args[1].X, x), px(seg.Args[1].Y, y),
				px(seg.Args[2].X, x), px(seg.Args[2].Y, y),
			)
		}
	}
	if open {
		z.ClosePath()
	}
}

func px(v fixed.Int26_6, origin float32) float32 {
	return float32(v)/64 + origin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func absFixed(v fixed.Int26_6) fixed.Int26_6 {
	if v < 0 {
		return -v
	}
	return v
}
