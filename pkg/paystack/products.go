package paystack

import (
	"context"
	"net/http"
	"net/url"
)

// CreateProductRequest adds a product to the inventory.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Currency    Currency `json:"currency"`
	Unlimited   *bool    `json:"unlimited,omitempty"`
	Quantity    int      `json:"quantity,omitempty"`
}

// ListProductsParams filters GET /product.
type ListProductsParams struct {
	ListOptions
}

// UpdateProductRequest changes a product.
type UpdateProductRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price,omitempty"`
	Currency    Currency `json:"currency,omitempty"`
	Unlimited   *bool    `json:"unlimited,omitempty"`
	Quantity    int      `json:"quantity,omitempty"`
}

// Create creates a product.
func (s ProductsService) Create(ctx context.Context, req CreateProductRequest) (*Response, error) {
	return call(ctx, s, http.MethodPost, "/product", req)
}

// List returns products on the integration.
func (s ProductsService) List(ctx context.Context, params ListProductsParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/product", q), nil)
}

// Fetch returns a product by ID.
func (s ProductsService) Fetch(ctx context.Context, id string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/product/"+url.PathEscape(id), nil)
}

// Update changes a product.
func (s ProductsService) Update(ctx context.Context, id string, req UpdateProductRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/product/"+url.PathEscape(id), req)
}
