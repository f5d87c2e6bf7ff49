// Package labels renders the price label shown next to a reduced product.
package labels

import (
	"errors"
	"fmt"

	"sale-catalog/pkg/models"
	"sale-catalog/pkg/pricing"
)

var ErrUnknownStyle = errors.New("unknown price label type")

type Style int

const (
	WasNow Style = iota
	WasThenNow
	PercentDiscount
)

const DefaultStyle = WasNow

var styleTokens = map[string]Style{
	"ShowWasNow":       WasNow,
	"ShowWasThenNow":   WasThenNow,
	"ShowPercDiscount": PercentDiscount,
}

// ParseStyle maps a labelType query value to a Style. An empty token selects
// DefaultStyle.
func ParseStyle(token string) (Style, error) {
	if token == "" {
		return DefaultStyle, nil
	}
	style, ok := styleTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStyle, token)
	}
	return style, nil
}

func (s Style) String() string {
	switch s {
	case WasNow:
		return "ShowWasNow"
	case WasThenNow:
		return "ShowWasThenNow"
	case PercentDiscount:
		return "ShowPercDiscount"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Render builds the label for one reduced item. now is the already formatted
// now price; discount must come from pricing.CalculateDiscount on price.
func Render(style Style, now string, price models.RawPrice, discount pricing.Discount) (string, error) {
	switch style {
	case WasThenNow:
		if then := thenPrice(price); !then.IsBlank() {
			was, err := pricing.FormatPrice(discount.Was, price.Currency)
			if err != nil {
				return "", err
			}
			formattedThen, err := pricing.FormatAmount(string(then), price.Currency)
			if err != nil {
				return "", fmt.Errorf("then: %w", err)
			}
			return fmt.Sprintf("Was %s, then %s, now %s", was, formattedThen, now), nil
		}
		return renderWasNow(now, price, discount)
	case WasNow:
		return renderWasNow(now, price, discount)
	case PercentDiscount:
		percent, err := discount.Percent()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d%% off - now %s", percent, now), nil
	}
	return "", fmt.Errorf("label style %s not recognised", style)
}

func renderWasNow(now string, price models.RawPrice, discount pricing.Discount) (string, error) {
	was, err := pricing.FormatPrice(discount.Was, price.Currency)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Was %s, now %s", was, now), nil
}

// thenPrice prefers then2 over then.
func thenPrice(price models.RawPrice) models.Amount {
	if !price.Then2.IsBlank() {
		return price.Then2
	}
	return price.Then
}
