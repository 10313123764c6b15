// Package urlparse extracts resource identifiers from Paystack dashboard
// links, so a URL copied from the browser can stand in for an ID.
package urlparse

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// ParsedURL is a dashboard link broken into its parts.
type ParsedURL struct {
	Host string
	// Resource is singular: transaction, customer, transfer, ...
	Resource string
	// ID is the numeric ID or code from the link; empty for list pages.
	ID string
}

// HasID reports whether the link points at a single resource.
func (p *ParsedURL) HasID() bool {
	return p.ID != ""
}

// dashboard route segment -> resource
var resources = map[string]string{
	"transactions":     "transaction",
	"customers":        "customer",
	"refunds":          "refund",
	"disputes":         "dispute",
	"transfers":        "transfer",
	"recipients":       "recipient",
	"subaccounts":      "subaccount",
	"splits":           "split",
	"plans":            "plan",
	"subscriptions":    "subscription",
	"products":         "product",
	"pages":            "page",
	"payment-pages":    "page",
	"invoices":         "invoice",
	"payment-requests": "invoice",
	"settlements":      "settlement",
	"bulk-charges":     "bulk_charge",
}

var routePattern = regexp.MustCompile(`^/([a-z-]+)(?:/([A-Za-z0-9_-]+))?(?:/.*)?$`)

// Parse reads a dashboard URL such as
// https://dashboard.paystack.com/#/transactions/4099260516/analytics.
// The route may live in the fragment (hash routing) or the path.
func Parse(rawURL string) (*ParsedURL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q: expected http or https", parsed.Scheme)
	}

	route := parsed.Path
	if frag := parsed.Fragment; strings.HasPrefix(frag, "/") {
		route = frag
	}
	if i := strings.IndexByte(route, '?'); i >= 0 {
		route = route[:i]
	}

	m := routePattern.FindStringSubmatch(route)
	if m == nil {
		return nil, fmt.Errorf("unrecognised dashboard link %q", rawURL)
	}
	resource, ok := resources[m[1]]
	if !ok {
		known := make([]string, 0, len(resources))
		for k := range resources {
			known = append(known, k)
		}
		slices.Sort(known)
		return nil, fmt.Errorf("unsupported dashboard section %q: expected one of %s", m[1], strings.Join(known, ", "))
	}

	return &ParsedURL{Host: parsed.Host, Resource: resource, ID: m[2]}, nil
}

// IsURL reports whether s looks like a link rather than a bare identifier.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}

// ResourceID returns the identifier from s. Bare identifiers pass through;
// links must point at a single resource of the wanted kind. An empty want
// accepts any kind.
func ResourceID(s, want string) (string, error) {
	if !IsURL(s) {
		return s, nil
	}
	p, err := Parse(s)
	if err != nil {
		return "", err
	}
	if want != "" && p.Resource != want {
		return "", fmt.Errorf("link points at a %s, not a %s", p.Resource, want)
	}
	if !p.HasID() {
		return "", fmt.Errorf("link points at the %s list, not a single %s", p.Resource, p.Resource)
	}
	return p.ID, nil
}

// IsResource reports whether kind is a resource that dashboard links can
// point at.
func IsResource(kind string) bool {
	for _, r := range resources {
		if r == kind {
			return true
		}
	}
	return false
}
