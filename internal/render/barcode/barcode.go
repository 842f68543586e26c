// Package barcode builds 1D barcode symbols at a fixed module width and bar height.
package barcode

import (
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
)

// Encode produces the unscaled symbol for value in the given symbology.
// An empty format means CODE128.
func Encode(value string, format model.BarcodeFormat) (barcode.Barcode, error) {
	if value == "" {
		return nil, ierr.NewError("barcode value is empty").Mark(ierr.ErrRender)
	}

	var (
		bc  barcode.Barcode
		err error
	)
	switch model.BarcodeFormat(strings.ToUpper(string(format))) {
	case "", model.BarcodeCODE128:
		bc, err = code128.Encode(value)
	case model.BarcodeCODE39:
		bc, err = code39.Encode(value, false, true)
	case model.BarcodeEAN13:
		if !digitsOfLen(value, 12, 13) {
			return nil, ierr.NewErrorf("EAN13 needs 12 or 13 digits, got %q", value).
				WithHint("Use a 12 digit code and let the check digit be computed").
				Mark(ierr.ErrRender)
		}
		bc, err = ean.Encode(value)
	case model.BarcodeEAN8:
		if !digitsOfLen(value, 7, 8) {
			return nil, ierr.NewErrorf("EAN8 needs 7 or 8 digits, got %q", value).
				Mark(ierr.ErrRender)
		}
		bc, err = ean.Encode(value)
	case model.BarcodeUPC:
		// UPC-A is EAN-13 with a leading zero
		if !digitsOfLen(value, 11, 12) {
			return nil, ierr.NewErrorf("UPC needs 11 or 12 digits, got %q", value).
				Mark(ierr.ErrRender)
		}
		bc, err = ean.Encode("0" + value)
	default:
		return nil, ierr.NewErrorf("unsupported barcode format %q", format).
			WithHintf("Supported formats: %s", strings.Join(formatNames(), ", ")).
			Mark(ierr.ErrRender)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to encode %q as %s", value, format).
			Mark(ierr.ErrRender)
	}
	return bc, nil
}

// Symbol encodes value and scales it to bars of the given height. The module
// width is the largest integer up to moduleWidth whose symbol fits maxWidth.
func Symbol(value string, format model.BarcodeFormat, moduleWidth, height, maxWidth int) (barcode.Barcode, error) {
	bc, err := Encode(value, format)
	if err != nil {
		return nil, err
	}

	modules := bc.Bounds().Dx()
	factor := moduleWidth
	for factor > 1 && modules*factor > maxWidth {
		factor--
	}
	if modules*factor > maxWidth {
		return nil, ierr.NewErrorf("barcode %q needs %d dots, only %d available", value, modules, maxWidth).
			WithHint("Shorten the barcode value").
			Mark(ierr.ErrRender)
	}

	scaled, err := barcode.Scale(bc, modules*factor, height)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to scale barcode").
			Mark(ierr.ErrRender)
	}
	return scaled, nil
}

func digitsOfLen(s string, lengths ...int) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	for _, n := range lengths {
		if len(s) == n {
			return true
		}
	}
	return false
}

func formatNames() []string {
	names := make([]string, 0, len(model.BarcodeFormats))
	for _, f := range model.BarcodeFormats {
		names = append(names, string(f))
	}
	return names
}
