package entity

import "github.com/shopspring/decimal"

// NUMERIC(10,2)
var maxAmount = decimal.New(1, 8)

func isValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.LessThan(maxAmount) &&
		amount.Equal(amount.Round(2))
}
