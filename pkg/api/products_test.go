package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sale-catalog/pkg/catalog"
	"sale-catalog/pkg/colors"
	"sale-catalog/pkg/labels"
	"sale-catalog/pkg/models"
)

type stubLister struct {
	products []models.Product
	err      error
	style    labels.Style
}

func (s *stubLister) ReducedProducts(ctx context.Context, style labels.Style) ([]models.Product, error) {
	s.style = style
	return s.products, s.err
}

func TestProductsHandler(t *testing.T) {
	product := models.Product{ProductID: "id", NowPrice: "£5.00", PriceLabel: "Was £10, now £5.00"}

	tests := []struct {
		name      string
		target    string
		wantStyle labels.Style
	}{
		{"Default label type", "/products", labels.WasNow},
		{"ShowWasNow", "/products?labelType=ShowWasNow", labels.WasNow},
		{"ShowWasThenNow", "/products?labelType=ShowWasThenNow", labels.WasThenNow},
		{"ShowPercDiscount", "/products?labelType=ShowPercDiscount", labels.PercentDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &stubLister{products: []models.Product{product}, style: -1}
			rr := httptest.NewRecorder()

			NewProductsHandler(lister).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rr.Code != http.StatusOK {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
			}
			if lister.style != tt.wantStyle {
				t.Errorf("wrong label style: got %v want %v", lister.style, tt.wantStyle)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("handler returned wrong content type: got %v", ct)
			}

			var body models.Products
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("handler returned invalid JSON: %v", err)
			}
			if len(body.Products) != 1 || body.Products[0].ProductID != product.ProductID || body.Products[0].PriceLabel != product.PriceLabel {
				t.Errorf("unexpected body: %s", rr.Body.String())
			}
		})
	}
}

func TestProductsHandlerEmptyList(t *testing.T) {
	rr := httptest.NewRecorder()
	NewProductsHandler(&stubLister{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	if got := strings.TrimSpace(rr.Body.String()); got != `{"products":[]}` {
		t.Errorf("expected empty list, got %s", got)
	}
}

func TestProductsHandlerProblems(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "Invalid label type",
			method:         http.MethodGet,
			target:         "/products?labelType=invalidLabelType",
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "unknown price label type",
		},
		{
			name:           "Wrong method",
			method:         http.MethodPost,
			target:         "/products",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedDetail: "Use GET",
		},
		{
			name:           "Upstream down",
			method:         http.MethodGet,
			target:         "/products",
			err:            fmt.Errorf("%w: %w", catalog.ErrCatalogUnavailable, errors.New("connection refused")),
			expectedStatus: http.StatusBadGateway,
			expectedDetail: "connection refused",
		},
		{
			name:           "Upstream timeout",
			method:         http.MethodGet,
			target:         "/products",
			err:            fmt.Errorf("%w: %w", catalog.ErrCatalogUnavailable, context.DeadlineExceeded),
			expectedStatus: http.StatusGatewayTimeout,
			expectedDetail: "deadline exceeded",
		},
		{
			name:           "Bad data",
			method:         http.MethodGet,
			target:         "/products",
			err:            fmt.Errorf("product 1: %w: %q", colors.ErrUnknownColor, "Teal"),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Teal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.target, nil)

			NewProductsHandler(&stubLister{err: tt.err}).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("handler returned wrong content type: got %v", ct)
			}

			var pd ProblemDetails
			if err := json.Unmarshal(rr.Body.Bytes(), &pd); err != nil {
				t.Fatalf("handler returned invalid JSON: %v. Body: %s", err, rr.Body.String())
			}
			if pd.Status != tt.expectedStatus {
				t.Errorf("JSON status mismatch: got %v want %v", pd.Status, tt.expectedStatus)
			}
			if pd.Type != "about:blank" {
				t.Errorf("JSON type mismatch: got %v", pd.Type)
			}
			if !strings.Contains(pd.Detail, tt.expectedDetail) {
				t.Errorf("JSON detail mismatch: got %q, want substring %q", pd.Detail, tt.expectedDetail)
			}
			if pd.Instance != "/products" {
				t.Errorf("JSON instance mismatch: got %v", pd.Instance)
			}
		})
	}
}

func TestWithRequestID(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
		t.Errorf("expected generated request id to be echoed, got %q / %q", seen, rr.Header().Get(RequestIDHeader))
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	handler.ServeHTTP(rr, req)
	if seen != "abc-123" || rr.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("expected caller request id to be kept, got %q", seen)
	}
}
