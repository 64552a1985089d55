package util

import (
	"github.com/shopspring/decimal"
)

// RoundFloat rounds half away from zero using decimal arithmetic so
// values like 1.005 don't pick up binary float error
func RoundFloat(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

func FormatMoney(f float64) string {
	return "$" + decimal.NewFromFloat(f).StringFixed(2)
}

func FloatPointer(f float64) *float64 {
	return &f
}
