package paystack

import "context"

// PathResolver turns an endpoint path into a full request URL.
type PathResolver interface {
	// apiPath returns the absolute URL for path, e.g. "/transaction/verify/ref"
	// -> "https://api.paystack.co/transaction/verify/ref".
	apiPath(path string) string
}

// HTTPExecutor sends requests and classifies responses.
type HTTPExecutor interface {
	// do sends body as JSON when non-nil and decodes the Paystack envelope.
	do(ctx context.Context, method, url string, body any) (*Response, error)
}

// Requester is the request surface every resource helper depends on.
//
// Resource methods delegate to package-level helpers that take a Requester,
// so tests can substitute a recording fake:
//
//	type fakeRequester struct{ method, url string; body any }
//	func (f *fakeRequester) apiPath(p string) string { return "https://test" + p }
//	func (f *fakeRequester) do(_ context.Context, m, u string, b any) (*Response, error) { ... }
type Requester interface {
	PathResolver
	HTTPExecutor
}

// call sends body to path and decodes the envelope. A nil body sends no payload.
func call(ctx context.Context, r Requester, method, path string, body any) (*Response, error) {
	return r.do(ctx, method, r.apiPath(path), body)
}
