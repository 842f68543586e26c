package layout

import (
	"fmt"
	"image"
	"image/color"

	"receipt-service/internal/model"
	"receipt-service/internal/render/barcode"
	"receipt-service/internal/render/text"
)

// Section is one row of the receipt layout. A section either applies and
// advances the cursor by Advance, or is skipped and leaves it untouched.
type Section struct {
	Name    string
	Applies func(d *model.ReceiptData) bool
	Advance int
	Ops     func(env Env, d *model.ReceiptData, y int) ([]Op, error)
}

const (
	margin       = 10
	ruleWeight   = 3
	heavyWeight  = 4
	logoSize     = 100
	logoInset    = 10
	barcodeTileW = 450
	barcodeTileH = 140
	barcodeTop   = 10
	barcodeBars  = 90
	barcodeDots  = 3
)

func always(*model.ReceiptData) bool { return true }

func nonEmpty(field func(d *model.ReceiptData) string) func(*model.ReceiptData) bool {
	return func(d *model.ReceiptData) bool { return field(d) != "" }
}

func bold(size float64, align text.Align) text.Style {
	return text.BoldStyle(size, align)
}

// centered draws a single centered line of a string field
func centered(field func(d *model.ReceiptData) string, size float64, rtl bool) func(Env, *model.ReceiptData, int) ([]Op, error) {
	return func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
		st := bold(size, text.AlignCenter)
		if rtl {
			st = st.RTL()
		}
		return []Op{Text{X: env.Width / 2, Y: y, S: field(d), Style: st}}, nil
	}
}

// labeled draws "<label>: <value>" at the left margin
func labeled(format string, field func(d *model.ReceiptData) string) func(Env, *model.ReceiptData, int) ([]Op, error) {
	return func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
		return []Op{Text{X: margin, Y: y, S: fmt.Sprintf(format, field(d)), Style: bold(26, text.AlignLeft)}}, nil
	}
}

// amountRow draws a label on the left and a value on the right
func amountRow(env Env, y int, label, value string, size float64) []Op {
	return []Op{
		Text{X: margin, Y: y, S: label, Style: bold(size, text.AlignLeft)},
		Text{X: env.Width - margin, Y: y, S: value, Style: bold(size, text.AlignRight)},
	}
}

func divider(name string, weight, advance int) Section {
	return Section{
		Name:    name,
		Applies: always,
		Advance: advance,
		Ops: func(env Env, _ *model.ReceiptData, y int) ([]Op, error) {
			return []Op{env.rule(y, weight)}, nil
		},
	}
}

// columns are the x anchors shared by the item header and the item rows
func columns(env Env) (qty, price, total int) {
	return env.Width/2 - 30, env.Width/2 + 50, env.Width - margin
}

var headSections = []Section{
	{Name: "top-margin", Applies: always, Advance: 30},
	{
		Name:    "logo",
		Applies: func(d *model.ReceiptData) bool { return d.Logo },
		Advance: logoSize + 10,
		Ops: func(env Env, _ *model.ReceiptData, y int) ([]Op, error) {
			outer := image.Rect(env.Width/2-logoSize/2, y, env.Width/2+logoSize/2, y+logoSize)
			inner := image.Rect(outer.Min.X+logoInset, y+logoInset, outer.Max.X-logoInset, outer.Max.Y-logoInset)
			return []Op{
				Fill{Rect: outer, Color: color.Black},
				Fill{Rect: inner, Color: color.White},
			}, nil
		},
	},
	{
		Name:    "store-name-arabic",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.StoreNameArabic }),
		Advance: 65,
		Ops:     centered(func(d *model.ReceiptData) string { return d.StoreNameArabic }, 56, true),
	},
	{
		Name:    "store-name",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.StoreName }),
		Advance: 40,
		Ops:     centered(func(d *model.ReceiptData) string { return d.StoreName }, 28, false),
	},
	{
		Name:    "address",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.StoreInfo.Address }),
		Advance: 35,
		Ops:     centered(func(d *model.ReceiptData) string { return d.StoreInfo.Address }, 24, false),
	},
	{
		Name:    "phone",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.StoreInfo.Phone }),
		Advance: 45,
		Ops:     centered(func(d *model.ReceiptData) string { return d.StoreInfo.Phone }, 24, false),
	},
	divider("store-divider", ruleWeight, 35),
	{
		Name:    "date",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.ReceiptInfo.Date }),
		Advance: 32,
		Ops:     labeled("Date: %s", func(d *model.ReceiptData) string { return d.ReceiptInfo.Date }),
	},
	{
		Name:    "receipt-number",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.ReceiptInfo.ReceiptNumber }),
		Advance: 32,
		Ops:     labeled("Receipt #: %s", func(d *model.ReceiptData) string { return d.ReceiptInfo.ReceiptNumber }),
	},
	{
		Name:    "cashier",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.ReceiptInfo.Cashier }),
		Advance: 32,
		Ops:     labeled("Cashier: %s", func(d *model.ReceiptData) string { return d.ReceiptInfo.Cashier }),
	},
	divider("info-divider", ruleWeight, 35),
	{
		Name:    "item-header",
		Applies: always,
		Advance: 35,
		Ops: func(env Env, _ *model.ReceiptData, y int) ([]Op, error) {
			qty, price, total := columns(env)
			return []Op{
				Text{X: margin, Y: y, S: "Item", Style: bold(28, text.AlignLeft)},
				Text{X: qty, Y: y, S: "Qty", Style: bold(28, text.AlignCenter)},
				Text{X: price, Y: y, S: "Price", Style: bold(28, text.AlignCenter)},
				Text{X: total, Y: y, S: "Total", Style: bold(28, text.AlignRight)},
			}, nil
		},
	},
	divider("header-divider", ruleWeight, 35),
}

// itemSection renders row i of the item table
func itemSection(i int) Section {
	return Section{
		Name:    fmt.Sprintf("item-%d", i),
		Applies: always,
		Advance: 55,
		Ops: func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
			item := d.Items[i]
			qty, price, total := columns(env)

			var ops []Op
			nameY := y
			if item.NameArabic != "" {
				ops = append(ops, Text{X: margin, Y: y, S: item.NameArabic, Style: bold(28, text.AlignLeft).RTL()})
				nameY = y + 28
			}
			if item.Name != "" {
				ops = append(ops, Text{X: margin, Y: nameY, S: item.Name, Style: bold(22, text.AlignLeft)})
			}

			return append(ops,
				Text{X: qty, Y: y, S: env.num(item.Qty.String()), Style: bold(28, text.AlignCenter)},
				Text{X: price, Y: y, S: env.money(item.Price), Style: bold(28, text.AlignCenter)},
				Text{X: total, Y: y, S: env.money(item.LineTotal()), Style: bold(28, text.AlignRight)},
			), nil
		},
	}
}

var tailSections = []Section{
	{
		Name:    "items-footer",
		Applies: always,
		Advance: 50,
		Ops: func(env Env, _ *model.ReceiptData, y int) ([]Op, error) {
			return []Op{env.rule(y+15, ruleWeight)}, nil
		},
	},
	{
		// amounts use truthiness: a zero subtotal is not printed
		Name:    "subtotal",
		Applies: func(d *model.ReceiptData) bool { return !d.Subtotal.IsZero() },
		Advance: 35,
		Ops: func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
			return amountRow(env, y, "Subtotal:", env.money(d.Subtotal), 30), nil
		},
	},
	{
		Name:    "tax",
		Applies: func(d *model.ReceiptData) bool { return !d.Tax.IsZero() },
		Advance: 40,
		Ops: func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
			label := fmt.Sprintf("Tax (%s%%):", env.num(d.EffectiveTaxRate().String()))
			return amountRow(env, y, label, env.money(d.Tax), 28), nil
		},
	},
	divider("total-divider", heavyWeight, 45),
	{
		Name:    "total",
		Applies: always,
		Advance: 50,
		Ops: func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
			value := fmt.Sprintf("%s %s", env.money(d.Total), d.CurrencyLabel())
			return amountRow(env, y, "TOTAL:", value, 42), nil
		},
	},
	divider("payment-divider", ruleWeight, 40),
	{
		Name:    "payment-method",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.Payment.Method }),
		Advance: 32,
		Ops:     labeled("Payment: %s", func(d *model.ReceiptData) string { return d.Payment.Method }),
	},
	{
		// change uses presence: a zero change is still printed
		Name:    "change",
		Applies: func(d *model.ReceiptData) bool { return d.Payment.Change != nil },
		Advance: 50,
		Ops: func(env Env, d *model.ReceiptData, y int) ([]Op, error) {
			s := fmt.Sprintf("Change: %s %s", env.money(*d.Payment.Change), d.CurrencyLabel())
			return []Op{Text{X: margin, Y: y, S: s, Style: bold(26, text.AlignLeft)}}, nil
		},
	},
	{
		Name:    "thank-you-arabic",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.ThankYouMessageArabic }),
		Advance: 45,
		Ops:     centered(func(d *model.ReceiptData) string { return d.ThankYouMessageArabic }, 34, true),
	},
	{
		Name:    "thank-you",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.ThankYouMessage }),
		Advance: 55,
		Ops:     centered(func(d *model.ReceiptData) string { return d.ThankYouMessage }, 28, false),
	},
	{
		Name:    "barcode",
		Applies: func(d *model.ReceiptData) bool { return d.HasBarcode() },
		Advance: 150,
		Ops:     barcodeOps,
	},
	{
		Name:    "website",
		Applies: nonEmpty(func(d *model.ReceiptData) string { return d.Website }),
		Advance: 50,
		Ops:     centered(func(d *model.ReceiptData) string { return d.Website }, 22, false),
	},
}

func barcodeOps(env Env, d *model.ReceiptData, y int) ([]Op, error) {
	sym, err := barcode.Symbol(d.Barcode.Value, d.Barcode.ResolvedFormat(), barcodeDots, barcodeBars, barcodeTileW)
	if err != nil {
		return nil, err
	}

	tile := image.Rect(0, 0, barcodeTileW, barcodeTileH).Add(image.Pt((env.Width-barcodeTileW)/2, y))
	bars := image.Pt(tile.Min.X+(barcodeTileW-sym.Bounds().Dx())/2, y+barcodeTop)

	return []Op{
		Fill{Rect: tile, Color: color.White},
		Picture{At: bars, Src: sym},
		Text{
			X:     env.Width / 2,
			Y:     y + barcodeTop + barcodeBars + 2 + 22,
			S:     d.Barcode.Value,
			Style: bold(22, text.AlignCenter),
		},
	}, nil
}

// Sections returns the layout table for d with one row section per item
func Sections(d *model.ReceiptData) []Section {
	out := make([]Section, 0, len(headSections)+len(d.Items)+len(tailSections))
	out = append(out, headSections...)
	for i := range d.Items {
		out = append(out, itemSection(i))
	}
	return append(out, tailSections...)
}
