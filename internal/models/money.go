package models

import "github.com/shopspring/decimal"

func init() {
	// The front end consumes amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Hundred is used for percentage arithmetic.
var Hundred = decimal.NewFromInt(100)
