package paystack

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CreatePageRequest creates a payment page.
type CreatePageRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Amount            int64    `json:"amount,omitempty"`
	Currency          Currency `json:"currency,omitempty"`
	Slug              string   `json:"slug,omitempty"`
	Type              string   `json:"type,omitempty"`
	Plan              string   `json:"plan,omitempty"`
	FixedAmount       *bool    `json:"fixed_amount,omitempty"`
	SplitCode         string   `json:"split_code,omitempty"`
	Metadata          Metadata `json:"metadata,omitempty"`
	RedirectURL       string   `json:"redirect_url,omitempty"`
	SuccessMessage    string   `json:"success_message,omitempty"`
	NotificationEmail string   `json:"notification_email,omitempty"`
	CollectPhone      *bool    `json:"collect_phone,omitempty"`
}

// ListPagesParams filters GET /page.
type ListPagesParams struct {
	ListOptions
}

// UpdatePageRequest changes a payment page.
type UpdatePageRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// AddPageProductsRequest attaches products to a page.
type AddPageProductsRequest struct {
	Product []int64 `json:"product"`
}

// Create creates a payment page.
func (s PagesService) Create(ctx context.Context, req CreatePageRequest) (*Response, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	return call(ctx, s, http.MethodPost, "/page", req)
}

// List returns payment pages on the integration.
func (s PagesService) List(ctx context.Context, params ListPagesParams) (*Response, error) {
	q := url.Values{}
	params.apply(q)
	return call(ctx, s, http.MethodGet, withQuery("/page", q), nil)
}

// Fetch returns a page by ID or slug.
func (s PagesService) Fetch(ctx context.Context, idOrSlug string) (*Response, error) {
	return call(ctx, s, http.MethodGet, "/page/"+url.PathEscape(idOrSlug), nil)
}

// Update changes a page.
func (s PagesService) Update(ctx context.Context, idOrSlug string, req UpdatePageRequest) (*Response, error) {
	return call(ctx, s, http.MethodPut, "/page/"+url.PathEscape(idOrSlug), req)
}

// CheckSlug reports whether a custom slug is still free.
func (s PagesService) CheckSlug(ctx context.Context, slug string) (*Response, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("slug is required")
	}
	return call(ctx, s, http.MethodGet, "/page/check_slug_availability/"+url.PathEscape(slug), nil)
}

// AddProducts adds products to a page.
func (s PagesService) AddProducts(ctx context.Context, id int64, req AddPageProductsRequest) (*Response, error) {
	if len(req.Product) == 0 {
		return nil, fmt.Errorf("at least one product is required")
	}
	return call(ctx, s, http.MethodPost, fmt.Sprintf("/page/%d/product", id), req)
}
