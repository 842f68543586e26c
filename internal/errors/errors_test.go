package errors

import (
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestMarkKeepsOriginatingError(t *testing.T) {
	err := WithError(io.ErrUnexpectedEOF).
		WithMessage("write receipt job").
		Mark(ErrDevice)

	assert.True(t, IsDevice(err))
	assert.False(t, IsRender(err))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "write receipt job")
}

func TestMarkKeepsTypedCause(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here/receipt.png")
	err := WithError(statErr).Mark(ErrFilesystem)

	var pathErr *os.PathError
	assert.True(t, As(err, &pathErr))
	assert.True(t, IsFilesystem(err))
}

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{name: "validation", err: NewError("bad kick code").Mark(ErrValidation), expected: http.StatusBadRequest, code: ErrCodeValidation},
		{name: "render", err: NewError("bad barcode").Mark(ErrRender), expected: http.StatusUnprocessableEntity, code: ErrCodeRender},
		{name: "device", err: NewError("usb gone").Mark(ErrDevice), expected: http.StatusServiceUnavailable, code: ErrCodeDevice},
		{name: "filesystem", err: NewError("disk full").Mark(ErrFilesystem), expected: http.StatusInternalServerError, code: ErrCodeFilesystem},
		{name: "unmarked", err: errors.New("boom"), expected: http.StatusInternalServerError, code: ErrCodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatusFromErr(tt.err))
			assert.Equal(t, tt.code, Code(tt.err))
		})
	}
}

func TestHints(t *testing.T) {
	err := NewError("kick code has 4 bytes").
		WithHint("kick code must list 5 or 6 bytes").
		Mark(ErrValidation)

	assert.Equal(t, "kick code must list 5 or 6 bytes", Hints(err))
}
