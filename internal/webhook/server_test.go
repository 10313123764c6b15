package webhook

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

const testSecret = "sk_test_webhook"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingSink) sink(_ context.Context, ev *paystack.Event, _ []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev.Event)
	return nil
}

func newDelivery(t *testing.T, body, signature string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, DefaultPath, strings.NewReader(body))
	if signature != "" {
		req.Header.Set(paystack.SignatureHeader, signature)
	}
	return req
}

func TestNewServer_RequiresSecret(t *testing.T) {
	_, err := NewServer(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestHandleWebhook(t *testing.T) {
	charge := `{"event":"charge.success","data":{"reference":"ps_1","amount":15050}}`

	tests := []struct {
		name       string
		body       string
		signature  string
		remote     string
		restrict   bool
		wantStatus int
		wantResult string
		wantEvents []string
	}{
		{
			name:       "valid delivery",
			body:       charge,
			signature:  paystack.Sign(testSecret, []byte(charge)),
			wantStatus: http.StatusOK,
			wantResult: "accepted",
			wantEvents: []string{"charge.success"},
		},
		{
			name:       "missing signature",
			body:       charge,
			wantStatus: http.StatusUnauthorized,
			wantResult: "bad_signature",
		},
		{
			name:       "signature from another key",
			body:       charge,
			signature:  paystack.Sign("sk_test_other", []byte(charge)),
			wantStatus: http.StatusUnauthorized,
			wantResult: "bad_signature",
		},
		{
			name:       "signed but no event name",
			body:       `{"data":{}}`,
			signature:  paystack.Sign(testSecret, []byte(`{"data":{}}`)),
			wantStatus: http.StatusBadRequest,
			wantResult: "bad_payload",
		},
		{
			name:       "ip restriction rejects unknown source",
			body:       charge,
			signature:  paystack.Sign(testSecret, []byte(charge)),
			restrict:   true,
			wantStatus: http.StatusForbidden,
			wantResult: "forbidden_ip",
		},
		{
			name:       "ip restriction allows paystack source",
			body:       charge,
			signature:  paystack.Sign(testSecret, []byte(charge)),
			remote:     "52.31.139.75:443",
			restrict:   true,
			wantStatus: http.StatusOK,
			wantResult: "accepted",
			wantEvents: []string{"charge.success"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingSink{}
			srv, err := NewServer(Config{Secret: testSecret, RestrictIPs: tt.restrict}, rec.sink, nil)
			require.NoError(t, err)

			req := newDelivery(t, tt.body, tt.signature)
			if tt.remote != "" {
				req.RemoteAddr = tt.remote
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().Requests.WithLabelValues(tt.wantResult)))
			assert.Equal(t, tt.wantEvents, rec.events)
		})
	}
}

func TestHandleWebhook_CountsEvents(t *testing.T) {
	srv, err := NewServer(Config{Secret: testSecret}, nil, nil)
	require.NoError(t, err)
	router := srv.Router()

	for _, name := range []string{"charge.success", "transfer.success", "charge.success"} {
		body := `{"event":"` + name + `","data":{}}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, newDelivery(t, body, paystack.Sign(testSecret, []byte(body))))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(srv.Metrics().Events.WithLabelValues("charge.success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().Events.WithLabelValues("transfer.success")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `paystack_webhook_events_total{event="charge.success"} 2`)
}

func TestHandleWebhook_Forward(t *testing.T) {
	var gotBody, gotSig string
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotSig = r.Header.Get(paystack.SignatureHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer target.Close()

	srv, err := NewServer(Config{Secret: testSecret, ForwardURL: target.URL}, nil, nil)
	require.NoError(t, err)
	defer srv.client.CloseIdleConnections()

	body := `{"event":"refund.processed","data":{}}`
	sig := paystack.Sign(testSecret, []byte(body))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, newDelivery(t, body, sig))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, gotBody)
	assert.Equal(t, sig, gotSig)
}

func TestHandleWebhook_ForwardFailure(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer target.Close()

	srv, err := NewServer(Config{Secret: testSecret, ForwardURL: target.URL}, nil, nil)
	require.NoError(t, err)
	defer srv.client.CloseIdleConnections()

	body := `{"event":"charge.success","data":{}}`
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, newDelivery(t, body, paystack.Sign(testSecret, []byte(body))))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.Metrics().Requests.WithLabelValues("forward_error")))
}

func TestRouter_Healthz(t *testing.T) {
	srv, err := NewServer(Config{Secret: testSecret, Path: "/hooks"}, nil, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hooks", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, err := NewServer(Config{Secret: testSecret}, nil, nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
