package models

// Products is the response body of GET /products.
type Products struct {
	Products []Product `json:"products"`
}

type Product struct {
	ProductID     string        `json:"productId"`
	Title         string        `json:"title"`
	ColorSwatches []ColorSwatch `json:"colorSwatches"`
	NowPrice      string        `json:"nowPrice"`
	PriceLabel    string        `json:"priceLabel"`
}

type ColorSwatch struct {
	Color    string `json:"color"`
	RGBColor string `json:"rgbColor"`
	SkuID    string `json:"skuid"`
}
