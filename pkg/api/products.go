package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"sale-catalog/pkg/labels"
	"sale-catalog/pkg/models"
)

const LabelTypeParam = "labelType"

// ProductLister is satisfied by *catalog.Service.
type ProductLister interface {
	ReducedProducts(ctx context.Context, style labels.Style) ([]models.Product, error)
}

type ProductsHandler struct {
	lister ProductLister
}

func NewProductsHandler(lister ProductLister) *ProductsHandler {
	return &ProductsHandler{lister: lister}
}

// ServeHTTP handles GET /products?labelType=ShowWasNow|ShowWasThenNow|ShowPercDiscount.
func (h *ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteMethodNotAllowed(w, http.MethodGet, r.URL.Path)
		return
	}

	style, err := labels.ParseStyle(r.URL.Query().Get(LabelTypeParam))
	if err != nil {
		WriteBadRequest(w, err.Error(), r.URL.Path)
		return
	}

	products, err := h.lister.ReducedProducts(r.Context(), style)
	if err != nil {
		log.Printf("[API] %s %s: %v", RequestID(r.Context()), r.URL.Path, err)
		WriteProblem(w, err, r.URL.Path)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ProductsResponse(products)); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}

// ProductsResponse wraps products in the response envelope, always
// rendering an empty list rather than null.
func ProductsResponse(products []models.Product) models.Products {
	if products == nil {
		products = []models.Product{}
	}
	return models.Products{Products: products}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
