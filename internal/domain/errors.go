package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidParameters = errors.New("invalid input parameters")
	ErrNoValidResults    = errors.New("no valid calculation results generated")
	ErrNoStockData       = errors.New("no valid stock data")
	ErrNotFound          = errors.New("not found")
)

// NoStockDataError is returned when none of the requested symbols had
// any usable price data at all
type NoStockDataError struct {
	Symbols        []string
	InvalidSymbols []string
}

func (e NoStockDataError) Error() string {
	return fmt.Sprintf("no valid stock data for stocks %s", strings.Join(e.Symbols, ", "))
}

func (e NoStockDataError) Unwrap() error {
	return ErrNoStockData
}
