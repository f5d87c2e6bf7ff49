// Package catalog turns the upstream product feed into the list of reduced
// products served by the API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sale-catalog/pkg/colors"
	"sale-catalog/pkg/labels"
	"sale-catalog/pkg/logger"
	"sale-catalog/pkg/models"
	"sale-catalog/pkg/pricing"
)

var ErrCatalogUnavailable = errors.New("unable to retrieve products from catalog")

// Fetcher supplies the raw catalog. Implementations live under pkg/fetch.
type Fetcher interface {
	Fetch(ctx context.Context) (*models.RawCatalog, error)
}

type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

type reduced struct {
	product  models.RawProduct
	discount pricing.Discount
}

// ReducedProducts returns the products that have a price reduction, highest
// reduction first, labelled in the given style.
func (s *Service) ReducedProducts(ctx context.Context, style labels.Style) ([]models.Product, error) {
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if raw == nil {
		raw = &models.RawCatalog{}
	}

	items := make([]reduced, 0, len(raw.Products))
	for _, p := range raw.Products {
		discount, err := pricing.CalculateDiscount(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", p.ProductID, err)
		}
		if !discount.Valid() {
			continue
		}
		items = append(items, reduced{product: p, discount: discount})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].discount.Amount.GreaterThan(items[j].discount.Amount)
	})

	products := make([]models.Product, 0, len(items))
	for _, item := range items {
		product, err := toProduct(item, style)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.product.ProductID, err)
		}
		products = append(products, product)
	}

	logger.Dedup("Catalog: %d of %d products reduced (%s)", len(products), len(raw.Products), style)
	return products, nil
}

func toProduct(item reduced, style labels.Style) (models.Product, error) {
	swatches, err := toSwatches(item.product.ColorSwatches)
	if err != nil {
		return models.Product{}, err
	}

	price := item.product.Price
	now, err := pricing.FormatPrice(item.discount.Now, price.Currency)
	if err != nil {
		return models.Product{}, err
	}
	label, err := labels.Render(style, now, price, item.discount)
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		ProductID:     item.product.ProductID,
		Title:         item.product.Title,
		ColorSwatches: swatches,
		NowPrice:      now,
		PriceLabel:    label,
	}, nil
}

func toSwatches(raw []models.RawColorSwatch) ([]models.ColorSwatch, error) {
	swatches := make([]models.ColorSwatch, 0, len(raw))
	for _, s := range raw {
		rgb, err := colors.Resolve(s.BasicColor)
		if err != nil {
			return nil, err
		}
		swatches = append(swatches, models.ColorSwatch{
			Color:    s.Color,
			RGBColor: rgb,
			SkuID:    s.SkuID,
		})
	}
	return swatches, nil
}
