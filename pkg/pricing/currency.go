package pricing

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// Prices at or above this threshold drop the decimals when they are whole.
var integerThreshold = decimal.NewFromInt(10)

var currencySymbols = map[string]string{
	"GBP": "£",
}

func Symbol(code string) (string, error) {
	symbol, ok := currencySymbols[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return symbol, nil
}

// FormatPrice renders amount with the currency symbol. Whole amounts of 10
// or more are shown without decimals ("£10", "£1,250"), everything else with
// exactly two ("£9.99", "£10.01").
func FormatPrice(amount decimal.Decimal, currency string) (string, error) {
	symbol, err := Symbol(currency)
	if err != nil {
		return "", err
	}

	if amount.GreaterThanOrEqual(integerThreshold) && amount.Equal(amount.Truncate(0)) {
		return symbol + humanize.Comma(amount.IntPart()), nil
	}
	return symbol + amount.StringFixedBank(2), nil
}

// FormatAmount parses a raw upstream amount and formats it.
func FormatAmount(raw string, currency string) (string, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return "", err
	}
	return FormatPrice(amount, currency)
}
