package models

import "github.com/shopspring/decimal"

// ReportHeader is the column order of a fee report
var ReportHeader = []string{"patron_id", "late_fees"}

// FeeTotal is the accumulated late fee of a single patron
type FeeTotal struct {
	PatronID string          `json:"patron_id"`
	LateFees decimal.Decimal `json:"late_fees"`
}

// Fixed renders the fee with exactly two decimals
func (f FeeTotal) Fixed() string {
	return f.LateFees.StringFixed(2)
}

// FeeTotals accumulates fees per patron, remembering first-seen order
type FeeTotals struct {
	order  []string
	totals map[string]decimal.Decimal
}

// NewFeeTotals returns an empty accumulator
func NewFeeTotals() *FeeTotals {
	return &FeeTotals{totals: make(map[string]decimal.Decimal)}
}

// Add adds amount to the patron's total, registering the patron if new.
// Negative amounts are ignored so totals never decrease.
func (t *FeeTotals) Add(patronID string, amount decimal.Decimal) {
	current, ok := t.totals[patronID]
	if !ok {
		t.order = append(t.order, patronID)
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	t.totals[patronID] = current.Add(amount)
}

// Get returns the patron's total and whether the patron was seen
func (t *FeeTotals) Get(patronID string) (decimal.Decimal, bool) {
	v, ok := t.totals[patronID]
	return v, ok
}

// Len returns the number of distinct patrons
func (t *FeeTotals) Len() int {
	return len(t.order)
}

// List returns the totals in first-seen order
func (t *FeeTotals) List() []FeeTotal {
	out := make([]FeeTotal, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, FeeTotal{PatronID: id, LateFees: t.totals[id]})
	}
	return out
}
