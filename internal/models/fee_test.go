package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeeTotals_OrderAndAccumulation(t *testing.T) {
	totals := NewFeeTotals()
	totals.Add("17", decimal.RequireFromString("1.00"))
	totals.Add("3", decimal.Zero)
	totals.Add("17", decimal.RequireFromString("0.50"))
	totals.Add("42", decimal.RequireFromString("0.25"))

	list := totals.List()
	assert.Equal(t, 3, totals.Len())
	assert.Equal(t, []string{"17", "3", "42"}, []string{list[0].PatronID, list[1].PatronID, list[2].PatronID})
	assert.Equal(t, "1.50", list[0].Fixed())
	assert.Equal(t, "0.00", list[1].Fixed())
	assert.Equal(t, "0.25", list[2].Fixed())
}

func TestFeeTotals_NeverDecreases(t *testing.T) {
	totals := NewFeeTotals()
	totals.Add("1", decimal.RequireFromString("2.00"))
	totals.Add("1", decimal.RequireFromString("-5.00"))

	got, ok := totals.Get("1")
	assert.True(t, ok)
	assert.Equal(t, "2.00", got.StringFixed(2))

	_, ok = totals.Get("missing")
	assert.False(t, ok)
}
