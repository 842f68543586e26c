package escpos

import (
	"strconv"
	"strings"

	ierr "receipt-service/internal/errors"
)

// kickLength is the size of a drawer pulse command including its trailing LF
const kickLength = 6

// DefaultKick returns a copy of the standard pin 2 pulse
func DefaultKick() []byte {
	return append([]byte(nil), ESC_POS_COMMANDS.DRAWER_KICK...)
}

// ParseKickCode turns "27,112,0,148,49" into a drawer pulse. An empty code
// gives the default pulse. Five bytes get LF appended, six are used as given.
func ParseKickCode(code string) ([]byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultKick(), nil
	}

	parts := strings.Split(code, ",")
	kick := make([]byte, 0, kickLength)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return nil, ierr.NewErrorf("invalid kick code byte %q", p).
				WithHint("kick code must be comma separated decimal bytes between 0 and 255").
				Mark(ierr.ErrValidation)
		}
		kick = append(kick, byte(v))
	}

	switch len(kick) {
	case kickLength - 1:
		return append(kick, ESC_POS_COMMANDS.LINE_FEED...), nil
	case kickLength:
		return kick, nil
	default:
		return nil, ierr.NewErrorf("kick code has %d bytes", len(kick)).
			WithHintf("kick code must have %d or %d bytes", kickLength-1, kickLength).
			Mark(ierr.ErrValidation)
	}
}
