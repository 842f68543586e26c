// internal/model/print.go
package model

import (
	"github.com/samber/lo"

	ierr "receipt-service/internal/errors"
)

// Density selects one of the ESC/POS bit-image modes
type Density string

const (
	DensitySingle8  Density = "s8"
	DensityDouble8  Density = "d8"
	DensitySingle24 Density = "s24"
	DensityDouble24 Density = "d24"
)

// DefaultDensity is the highest-density preset
const DefaultDensity = DensityDouble24

// Densities lists every supported preset
var Densities = []Density{DensitySingle8, DensityDouble8, DensitySingle24, DensityDouble24}

// ConnectionType represents how the printer is connected
type ConnectionType string

const (
	ConnectionTypeSerial ConnectionType = "SERIAL"
	ConnectionTypeUSB    ConnectionType = "USB"
	ConnectionTypeTCP    ConnectionType = "TCP"
)

// PrintOptions are the print-time options
type PrintOptions struct {
	Density    Density `json:"density,omitempty" binding:"omitempty,oneof=s8 d8 s24 d24"`
	OpenDrawer bool    `json:"openDrawer,omitempty"`
}

// ResolvedDensity returns the density, defaulting to d24
func (o PrintOptions) ResolvedDensity() Density {
	if o.Density == "" {
		return DefaultDensity
	}
	return o.Density
}

// DrawerOptions are the cash drawer options
type DrawerOptions struct {
	// KickCode is a comma separated decimal byte list, e.g. "27,112,0,148,49"
	KickCode string `json:"kickCode,omitempty"`
}

// PrintResult is returned by successful print and drawer operations
type PrintResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}

// Validate checks a density name
func (d Density) Validate() error {
	if d == "" || lo.Contains(Densities, d) {
		return nil
	}
	return ierr.NewErrorf("unsupported density %q", string(d)).
		WithHintf("density must be one of %v", Densities).
		Mark(ierr.ErrValidation)
}

// Validate checks the request-level expectations on a receipt. The renderer
// itself does not call this.
func (r *ReceiptData) Validate() error {
	for i, item := range r.Items {
		if item.Qty.IsNegative() || item.Price.IsNegative() {
			return ierr.NewErrorf("item %d has a negative qty or price", i).
				WithHint("item qty and price must be non-negative").
				Mark(ierr.ErrValidation)
		}
	}

	if r.Barcode != nil {
		if r.Barcode.Value == "" && r.Barcode.Format != "" {
			return ierr.NewError("barcode object has no value").
				WithHint("barcode.value is required").
				Mark(ierr.ErrValidation)
		}
		if !lo.Contains(BarcodeFormats, r.Barcode.ResolvedFormat()) {
			return ierr.NewErrorf("unsupported barcode format %q", string(r.Barcode.Format)).
				WithHintf("barcode format must be one of %v", BarcodeFormats).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// BarcodeFormats lists every supported symbology
var BarcodeFormats = []BarcodeFormat{BarcodeCODE128, BarcodeCODE39, BarcodeEAN13, BarcodeEAN8, BarcodeUPC}
