package escpos

import (
	"bytes"
	"image"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
)

// feedBeforeCut is the number of line feeds between the image and the cut
const feedBeforeCut = 3

// BuildPrintJob assembles the full byte stream for one receipt: reset,
// centered bit image bands, feed, full cut and an optional drawer kick.
func BuildPrintJob(img image.Image, density model.Density, kick []byte) ([]byte, error) {
	mode, ok := ModeFor(density)
	if !ok {
		return nil, ierr.NewErrorf("unsupported density %q", string(density)).
			WithHintf("density must be one of %v", model.Densities).
			Mark(ierr.ErrValidation)
	}

	var buf bytes.Buffer
	buf.Write(ESC_POS_COMMANDS.INITIALIZE)
	buf.Write(ESC_POS_COMMANDS.ALIGN_CENTER)
	buf.Write(ESC_POS_COMMANDS.LINE_SPACING_ZERO)

	WriteBitImage(&buf, img, mode)

	buf.Write(ESC_POS_COMMANDS.LINE_SPACING_DEFAULT)
	for i := 0; i < feedBeforeCut; i++ {
		buf.Write(ESC_POS_COMMANDS.LINE_FEED)
	}
	buf.Write(ESC_POS_COMMANDS.CUT_FULL)
	buf.Write(kick)

	return buf.Bytes(), nil
}
