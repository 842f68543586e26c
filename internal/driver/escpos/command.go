// internal/driver/escpos/command.go
package escpos

import "receipt-service/internal/model"

// ESC_POS_COMMANDS contains the ESC/POS commands used for raster receipts
var ESC_POS_COMMANDS = struct {
	// Basic commands
	INITIALIZE []byte

	// Alignment
	ALIGN_CENTER []byte

	// Line spacing
	LINE_SPACING_ZERO    []byte
	LINE_SPACING_DEFAULT []byte

	// Paper handling
	LINE_FEED []byte

	// Cutting
	CUT_FULL []byte

	// Graphics
	BIT_IMAGE []byte // + m nL nH data

	// Cash drawer
	DRAWER_KICK []byte // ESC p 0 25 250 LF
}{
	// Basic commands
	INITIALIZE: []byte{0x1B, 0x40}, // ESC @

	// Alignment
	ALIGN_CENTER: []byte{0x1B, 0x61, 0x01}, // ESC a 1

	// Line spacing
	LINE_SPACING_ZERO:    []byte{0x1B, 0x33, 0x00}, // ESC 3 0
	LINE_SPACING_DEFAULT: []byte{0x1B, 0x32},       // ESC 2

	// Paper handling
	LINE_FEED: []byte{0x0A}, // LF

	// Cutting
	CUT_FULL: []byte{0x1D, 0x56, 0x00}, // GS V 0

	// Graphics
	BIT_IMAGE: []byte{0x1B, 0x2A}, // ESC *

	// Cash drawer
	DRAWER_KICK: []byte{0x1B, 0x70, 0x00, 0x19, 0xFA, 0x0A}, // ESC p 0 25 250 LF
}

// Mode describes one ESC * bit image mode
type Mode struct {
	M    byte // ESC * m
	Dots int  // vertical dots per band, 8 or 24
}

// modes maps densities to ESC * modes
var modes = map[model.Density]Mode{
	model.DensitySingle8:  {M: 0x00, Dots: 8},
	model.DensitySingle24: {M: 0x20, Dots: 24},
	model.DensityDouble8:  {M: 0x01, Dots: 8},
	model.DensityDouble24: {M: 0x21, Dots: 24},
}

// ModeFor returns the bit image mode of a density. Empty means d24.
func ModeFor(d model.Density) (Mode, bool) {
	if d == "" {
		d = model.DefaultDensity
	}
	m, ok := modes[d]
	return m, ok
}
