// internal/model/receipt.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is appended to monetary amounts when ReceiptData.Currency is empty
const DefaultCurrency = "EGP"

// DefaultTaxRate is shown in the tax label when ReceiptData.TaxRate is zero
var DefaultTaxRate = decimal.NewFromInt(14)

// BarcodeFormat names a barcode symbology
type BarcodeFormat string

const (
	BarcodeCODE128 BarcodeFormat = "CODE128"
	BarcodeCODE39  BarcodeFormat = "CODE39"
	BarcodeEAN13   BarcodeFormat = "EAN13"
	BarcodeEAN8    BarcodeFormat = "EAN8"
	BarcodeUPC     BarcodeFormat = "UPC"
)

// ReceiptData is the input of one render. It is never modified by the renderer.
type ReceiptData struct {
	StoreName             string          `json:"storeName,omitempty"`
	StoreNameArabic       string          `json:"storeNameArabic,omitempty"`
	StoreInfo             StoreInfo       `json:"storeInfo"`
	ReceiptInfo           ReceiptInfo     `json:"receiptInfo"`
	Items                 []Item          `json:"items"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Tax                   decimal.Decimal `json:"tax"`
	TaxRate               decimal.Decimal `json:"taxRate"`
	Total                 decimal.Decimal `json:"total"`
	Currency              string          `json:"currency,omitempty"`
	Payment               Payment         `json:"payment"`
	ThankYouMessage       string          `json:"thankYouMessage,omitempty"`
	ThankYouMessageArabic string          `json:"thankYouMessageArabic,omitempty"`
	Barcode               *Barcode        `json:"barcode,omitempty"`
	Website               string          `json:"website,omitempty"`
	Logo                  bool            `json:"logo,omitempty"`
}

// StoreInfo holds the optional store contact lines
type StoreInfo struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ReceiptInfo holds the optional receipt metadata lines
type ReceiptInfo struct {
	Date          string `json:"date,omitempty"`
	ReceiptNumber string `json:"receiptNumber,omitempty"`
	Cashier       string `json:"cashier,omitempty"`
}

// Item is one row of the item table
type Item struct {
	Name       string          `json:"name,omitempty"`
	NameArabic string          `json:"nameArabic,omitempty"`
	Qty        decimal.Decimal `json:"qty"`
	Price      decimal.Decimal `json:"price"`
}

// LineTotal is qty × price. It is always recomputed, never read from input.
func (i Item) LineTotal() decimal.Decimal {
	return i.Qty.Mul(i.Price)
}

// Payment holds the optional payment block.
// Change is a pointer: a zero change is printed, a missing one is not.
type Payment struct {
	Method string           `json:"method,omitempty"`
	Change *decimal.Decimal `json:"change,omitempty"`
}

// Barcode is either a bare value or a {value, format} object on the wire
type Barcode struct {
	Value  string        `json:"value"`
	Format BarcodeFormat `json:"format,omitempty"`
}

// UnmarshalJSON accepts both "1234567890" and {"value":"1234567890","format":"CODE128"}
func (b *Barcode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*b = Barcode{Value: value}
		return nil
	}

	type plain Barcode
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("barcode must be a string or {value, format}: %w", err)
	}
	*b = Barcode(p)
	return nil
}

// ResolvedFormat returns the format, defaulting to CODE128
func (b Barcode) ResolvedFormat() BarcodeFormat {
	if b.Format == "" {
		return BarcodeCODE128
	}
	return b.Format
}

// CurrencyLabel returns the currency or its default
func (r *ReceiptData) CurrencyLabel() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return r.Currency
}

// EffectiveTaxRate returns the tax rate, with zero meaning the default rate
func (r *ReceiptData) EffectiveTaxRate() decimal.Decimal {
	if r.TaxRate.IsZero() {
		return DefaultTaxRate
	}
	return r.TaxRate
}

// HasBarcode reports whether a barcode with a value was supplied
func (r *ReceiptData) HasBarcode() bool {
	return r.Barcode != nil && r.Barcode.Value != ""
}
