package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RawCatalog is the payload returned by the upstream catalog API.
type RawCatalog struct {
	Products []RawProduct `json:"products"`
}

type RawProduct struct {
	ProductID     string           `json:"productId"`
	Title         string           `json:"title"`
	ColorSwatches []RawColorSwatch `json:"colorSwatches"`
	Price         RawPrice         `json:"price"`
}

type RawColorSwatch struct {
	Color      string `json:"color"`
	BasicColor string `json:"basicColor"`
	SkuID      string `json:"skuId"`
}

type RawPrice struct {
	Was      Amount   `json:"was"`
	Then     Amount   `json:"then"`
	Then2    Amount   `json:"then2"`
	Now      NowPrice `json:"now"`
	Currency string   `json:"currency"`
}

// Amount is a price field as sent upstream. It is usually a string but
// numbers are accepted too; null and "" both mean absent.
type Amount string

func (a Amount) IsBlank() bool {
	return strings.TrimSpace(string(a)) == ""
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	text, ok := scalarText(data)
	if !ok {
		return fmt.Errorf("amount must be a string or number, got %s", data)
	}
	*a = Amount(text)
	return nil
}

type NowKind int

const (
	NowMissing NowKind = iota
	NowPlain
	NowRange
	NowMalformed
)

func (k NowKind) String() string {
	switch k {
	case NowMissing:
		return "missing"
	case NowPlain:
		return "plain"
	case NowRange:
		return "range"
	case NowMalformed:
		return "malformed"
	}
	return fmt.Sprintf("NowKind(%d)", int(k))
}

// NowPrice is the current price. Upstream sends either a plain string
// ("12.00") or an object whose "to" field carries the price
// ({"from": "10.00", "to": "12.00"}). The shape is decided once while
// decoding; anything else is kept as NowMalformed so pricing can report it.
type NowPrice struct {
	Kind  NowKind
	Value string
	Raw   string
}

func PlainNow(value string) NowPrice {
	return NowPrice{Kind: NowPlain, Value: value}
}

func RangeNow(to string) NowPrice {
	return NowPrice{Kind: NowRange, Value: to}
}

func (n *NowPrice) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*n = NowPrice{}

	switch {
	case bytes.Equal(trimmed, []byte("null")):
		n.Kind = NowMissing
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = PlainNow(s)
	case len(trimmed) > 0 && trimmed[0] == '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if to, ok := scalarText(obj["to"]); ok && obj["to"] != nil {
			*n = RangeNow(to)
			return nil
		}
		*n = NowPrice{Kind: NowMalformed, Raw: string(trimmed)}
	default:
		*n = NowPrice{Kind: NowMalformed, Raw: string(trimmed)}
	}
	return nil
}

func (n NowPrice) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NowPlain:
		return json.Marshal(n.Value)
	case NowRange:
		return json.Marshal(map[string]string{"to": n.Value})
	case NowMalformed:
		if n.Raw != "" {
			return []byte(n.Raw), nil
		}
	}
	return []byte("null"), nil
}

// scalarText turns a JSON string, number or null into its text form.
func scalarText(data json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", true
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return "", false
	}
	return num.String(), true
}
