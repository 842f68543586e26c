package text

import (
	"bytes"
	"fmt"
	"os"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Font is one parsed font file, readable by both the shaper and the outline loader
type Font struct {
	name string
	face *gotext.Face
	sfnt *sfnt.Font
}

// ParseFont parses TTF/OTF data
func ParseFont(name string, data []byte) (*Font, error) {
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}

	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s for shaping: %w", name, err)
	}

	return &Font{
		name: name,
		face: face,
		sfnt: outlines,
	}, nil
}

// LoadFont reads and parses a font file
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return ParseFont(path, data)
}

// Name returns the file or builtin name the font was loaded from
func (f *Font) Name() string {
	return f.name
}

// FontPaths lists optional font files. Empty entries fall back to the
// embedded Go fonts (Latin) or to the Latin face (Arabic).
type FontPaths struct {
	LatinRegular  string `mapstructure:"latin_regular"`
	LatinBold     string `mapstructure:"latin_bold"`
	ArabicRegular string `mapstructure:"arabic_regular"`
	ArabicBold    string `mapstructure:"arabic_bold"`
}

// FontSet holds the faces used for Latin and Arabic runs
type FontSet struct {
	latin  [2]*Font
	arabic [2]*Font
}

// DefaultFontSet uses the embedded Go fonts for every run
func DefaultFontSet() (*FontSet, error) {
	return LoadFontSet(FontPaths{})
}

// LoadFontSet loads the configured faces
func LoadFontSet(paths FontPaths) (*FontSet, error) {
	regular, err := loadOr(paths.LatinRegular, "goregular", goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := loadOr(paths.LatinBold, "gobold", gobold.TTF)
	if err != nil {
		return nil, err
	}

	fs := &FontSet{
		latin:  [2]*Font{Regular: regular, Bold: bold},
		arabic: [2]*Font{Regular: regular, Bold: bold},
	}

	if paths.ArabicRegular != "" {
		if fs.arabic[Regular], err = LoadFont(paths.ArabicRegular); err != nil {
			return nil, err
		}
		fs.arabic[Bold] = fs.arabic[Regular]
	}
	if paths.ArabicBold != "" {
		if fs.arabic[Bold], err = LoadFont(paths.ArabicBold); err != nil {
			return nil, err
		}
		if paths.ArabicRegular == "" {
			fs.arabic[Regular] = fs.arabic[Bold]
		}
	}

	return fs, nil
}

func loadOr(path, builtinName string, builtin []byte) (*Font, error) {
	if path != "" {
		return LoadFont(path)
	}
	return ParseFont(builtinName, builtin)
}

// face picks the font for a run
func (fs *FontSet) face(arabic bool, w Weight) *Font {
	if w != Bold {
		w = Regular
	}
	if arabic {
		return fs.arabic[w]
	}
	return fs.latin[w]
}
