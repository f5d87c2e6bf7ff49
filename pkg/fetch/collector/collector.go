// Package collector fetches the raw catalog over plain HTTP with colly.
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sale-catalog/pkg/models"

	"github.com/gocolly/colly/v2"
)

type Fetcher struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

func NewFetcher(url, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		URL:       url,
		UserAgent: userAgent,
		Timeout:   timeout,
	}
}

// Fetch downloads and decodes the catalog. A fresh collector is used per
// call so concurrent requests share nothing.
func (f *Fetcher) Fetch(ctx context.Context) (*models.RawCatalog, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.UserAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.Timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/json")
	})

	var catalog models.RawCatalog
	var decodeErr error
	c.OnResponse(func(r *colly.Response) {
		if err := json.Unmarshal(r.Body, &catalog); err != nil {
			decodeErr = fmt.Errorf("failed to decode catalog: %w", err)
		}
	})

	log.Printf("[FETCH] Requesting catalog from %s", f.URL)
	if err := c.Visit(f.URL); err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	return &catalog, nil
}
