package pricing

import (
	"errors"
	"fmt"
	"strings"

	"sale-catalog/pkg/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid price amount")

var hundred = decimal.NewFromInt(100)

// Discount is the reduction of one catalog item. The zero value means the
// item has no was price and therefore no discount.
type Discount struct {
	Was    decimal.Decimal
	Now    decimal.Decimal
	Amount decimal.Decimal
}

// Valid reports whether the item is actually reduced.
func (d Discount) Valid() bool {
	return d.Amount.IsPositive()
}

// Percent is the reduction relative to the was price, rounded down.
func (d Discount) Percent() (int64, error) {
	if !d.Was.IsPositive() {
		return 0, fmt.Errorf("%w: was price %s cannot carry a percentage", ErrInvalidAmount, d.Was)
	}
	return d.Amount.Div(d.Was).Mul(hundred).Floor().IntPart(), nil
}

func ParseAmount(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}

// ResolveNow returns the numeric value of a now price, whichever shape it
// arrived in.
func ResolveNow(now models.NowPrice) (decimal.Decimal, error) {
	switch now.Kind {
	case models.NowPlain, models.NowRange:
		return ParseAmount(now.Value)
	case models.NowMissing:
		return decimal.Zero, fmt.Errorf("%w: now price is missing", ErrInvalidAmount)
	case models.NowMalformed:
		return decimal.Zero, fmt.Errorf("%w: unsupported now price %s", ErrInvalidAmount, now.Raw)
	}
	return decimal.Zero, fmt.Errorf("%w: unknown now price kind %s", ErrInvalidAmount, now.Kind)
}

// CalculateDiscount computes was - now. Items without a was price get the
// zero Discount and their now price is not inspected.
func CalculateDiscount(price models.RawPrice) (Discount, error) {
	if price.Was.IsBlank() {
		return Discount{}, nil
	}

	was, err := ParseAmount(string(price.Was))
	if err != nil {
		return Discount{}, fmt.Errorf("was: %w", err)
	}
	now, err := ResolveNow(price.Now)
	if err != nil {
		return Discount{}, fmt.Errorf("now: %w", err)
	}

	return Discount{
		Was:    was,
		Now:    now,
		Amount: was.Sub(now),
	}, nil
}
