// Package browser fetches the raw catalog through headless Chrome, for
// upstreams that only answer real browsers.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"sale-catalog/pkg/models"

	"github.com/chromedp/chromedp"
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

func (f *Fetcher) Fetch(ctx context.Context) (*models.RawCatalog, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(f.UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	fetchCtx, cancelFetch := context.WithTimeout(browserCtx, f.Timeout)
	defer cancelFetch()

	var body string

	log.Printf("[FETCH] Navigating to %s", f.URL)

	err := chromedp.Run(fetchCtx,
		chromedp.Navigate(f.URL),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
		// Chrome wraps JSON documents in a <pre>; innerText gives the raw payload back.
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &body),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp failed: %w", err)
	}

	return Decode(body)
}

// Decode parses the page text captured from the browser.
func Decode(body string) (*models.RawCatalog, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("catalog page was empty")
	}

	var catalog models.RawCatalog
	if err := json.Unmarshal([]byte(body), &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &catalog, nil
}
