package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "receipt-service/internal/errors"
)

func TestBarcodeUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Barcode
	}{
		{name: "bare string", input: `{"barcode":"1234567890"}`, expected: Barcode{Value: "1234567890"}},
		{name: "object", input: `{"barcode":{"value":"1234567890","format":"CODE128"}}`, expected: Barcode{Value: "1234567890", Format: BarcodeCODE128}},
		{name: "object without format", input: `{"barcode":{"value":"ABC"}}`, expected: Barcode{Value: "ABC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data ReceiptData
			require.NoError(t, json.Unmarshal([]byte(tt.input), &data))
			require.NotNil(t, data.Barcode)
			assert.Equal(t, tt.expected, *data.Barcode)
			assert.Equal(t, BarcodeCODE128, data.Barcode.ResolvedFormat())
		})
	}
}

func TestBarcodeUnmarshalRejectsNumbers(t *testing.T) {
	var data ReceiptData
	assert.Error(t, json.Unmarshal([]byte(`{"barcode":12345}`), &data))
}

func TestPaymentChangePresence(t *testing.T) {
	var withZero, without ReceiptData
	require.NoError(t, json.Unmarshal([]byte(`{"payment":{"method":"Cash","change":0}}`), &withZero))
	require.NoError(t, json.Unmarshal([]byte(`{"payment":{"method":"Cash"}}`), &without))

	require.NotNil(t, withZero.Payment.Change)
	assert.True(t, withZero.Payment.Change.IsZero())
	assert.Nil(t, without.Payment.Change)
}

func TestNonNumericQtyFailsDecoding(t *testing.T) {
	var data ReceiptData
	err := json.Unmarshal([]byte(`{"items":[{"name":"Cola","qty":"two","price":5}]}`), &data)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	data := ReceiptData{}
	assert.Equal(t, "EGP", data.CurrencyLabel())
	assert.True(t, data.EffectiveTaxRate().Equal(decimal.NewFromInt(14)))

	data.Currency = "جنيه"
	data.TaxRate = decimal.NewFromInt(5)
	assert.Equal(t, "جنيه", data.CurrencyLabel())
	assert.True(t, data.EffectiveTaxRate().Equal(decimal.NewFromInt(5)))
}

func TestLineTotal(t *testing.T) {
	item := Item{Qty: decimal.NewFromInt(3), Price: decimal.RequireFromString("8.00")}
	assert.Equal(t, "24.00", item.LineTotal().StringFixed(2))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    ReceiptData
		wantErr bool
	}{
		{name: "empty receipt", data: ReceiptData{}},
		{name: "negative qty", data: ReceiptData{Items: []Item{{Name: "x", Qty: decimal.NewFromInt(-1)}}}, wantErr: true},
		{name: "unknown barcode format", data: ReceiptData{Barcode: &Barcode{Value: "1", Format: "QR"}}, wantErr: true},
		{name: "object without value", data: ReceiptData{Barcode: &Barcode{Format: BarcodeEAN8}}, wantErr: true},
		{name: "upc", data: ReceiptData{Barcode: &Barcode{Value: "03600029145", Format: BarcodeUPC}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDensity(t *testing.T) {
	assert.Equal(t, DensityDouble24, PrintOptions{}.ResolvedDensity())
	assert.Equal(t, DensitySingle8, PrintOptions{Density: DensitySingle8}.ResolvedDensity())
	assert.NoError(t, Density("").Validate())
	assert.NoError(t, DensitySingle24.Validate())
	assert.True(t, ierr.IsValidation(Density("d48").Validate()))
}
