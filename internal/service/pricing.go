package service

import "github.com/shopspring/decimal"

// Derived price views. Computed at read time from stored state and never
// persisted, so rate changes retroactively affect every displayed total.

var percentBase = decimal.NewFromInt(100)

// RetailPrice applies a local's percentage markup to a base price
func RetailPrice(base decimal.Decimal, ratePct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(ratePct.Div(percentBase))
	return base.Mul(factor).Round(2)
}

// ConvertedPrice converts a base-currency price to the secondary currency
func ConvertedPrice(base decimal.Decimal, conversionRate decimal.Decimal) decimal.Decimal {
	return base.Mul(conversionRate).Round(2)
}
