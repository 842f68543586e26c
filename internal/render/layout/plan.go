// Package layout turns receipt data into positioned draw operations.
//
// The layout is a table of sections folded over a vertical cursor. The fold
// runs without a surface, so the final height is known before anything is
// allocated.
package layout

import (
	"github.com/shopspring/decimal"

	"receipt-service/internal/model"
)

// DefaultWidth is the printable width of an 80mm head at 203 dpi
const DefaultWidth = 512

// Env holds the per renderer settings sections read
type Env struct {
	Width  int
	Digits func(string) string
}

func (e Env) num(s string) string {
	if e.Digits == nil {
		return s
	}
	return e.Digits(s)
}

func (e Env) money(v decimal.Decimal) string {
	return e.num(v.StringFixed(2))
}

func (e Env) rule(y, weight int) Rule {
	return Rule{X0: margin, X1: e.Width - margin, Y: y, Weight: weight}
}

// Placement is an applied section with the cursor it was laid out at
type Placement struct {
	Section string
	Y       int
	Ops     []Op
}

// Plan is the result of the dry layout pass
type Plan struct {
	Width      int
	Height     int
	Placements []Placement
}

// Ops flattens every placement into painting order
func (p *Plan) Ops() []Op {
	var ops []Op
	for _, pl := range p.Placements {
		ops = append(ops, pl.Ops...)
	}
	return ops
}

// Has reports whether a section with the given name was applied
func (p *Plan) Has(name string) bool {
	for _, pl := range p.Placements {
		if pl.Section == name {
			return true
		}
	}
	return false
}

// Build folds the section table over d. Errors come from section ops
// (barcode encoding) and are returned unchanged.
func Build(env Env, d *model.ReceiptData) (*Plan, error) {
	if env.Width <= 0 {
		env.Width = DefaultWidth
	}

	plan := &Plan{Width: env.Width}
	y := 0
	for _, s := range Sections(d) {
		if !s.Applies(d) {
			continue
		}

		var ops []Op
		if s.Ops != nil {
			var err error
			if ops, err = s.Ops(env, d, y); err != nil {
				return nil, err
			}
		}

		plan.Placements = append(plan.Placements, Placement{Section: s.Name, Y: y, Ops: ops})
		y += s.Advance
	}
	plan.Height = y
	return plan, nil
}
