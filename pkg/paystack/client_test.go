package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testKey = "sk_test_abc123"

func newTestClient(baseURL string) *Client {
	c := NewWithBaseURL(baseURL, testKey)
	c.RetryConfig.RateLimitBaseDelay = time.Millisecond
	c.RetryConfig.ServerErrorRetryDelay = time.Millisecond
	return c
}

func TestNew(t *testing.T) {
	client := New("  sk_test_abc  ")

	if client.BaseURL != DefaultBaseURL {
		t.Errorf("Expected BaseURL %s, got %s", DefaultBaseURL, client.BaseURL)
	}
	if client.SecretKey != "sk_test_abc" {
		t.Errorf("Expected trimmed secret key, got %q", client.SecretKey)
	}
	if client.HTTP == nil || client.HTTP.Timeout != DefaultTimeout {
		t.Error("Expected HTTP client with default timeout")
	}
}

func TestAPIPath(t *testing.T) {
	client := NewWithBaseURL("https://example.com/", testKey)

	tests := []struct {
		path     string
		expected string
	}{
		{"/transaction", "https://example.com/transaction"},
		{"transaction/verify/ref", "https://example.com/transaction/verify/ref"},
		{"", "https://example.com"},
	}
	for _, tt := range tests {
		if got := client.apiPath(tt.path); got != tt.expected {
			t.Errorf("apiPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+testKey {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if r.Method == http.MethodPost && r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if r.Method == http.MethodGet && r.Header.Get("Content-Type") != "" {
			t.Errorf("GET should not set Content-Type, got %q", r.Header.Get("Content-Type"))
		}
		if got := r.Header.Get("User-Agent"); got != "paystack-cli/test" {
			t.Errorf("User-Agent = %q", got)
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.UserAgent = "paystack-cli/test"
	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); err != nil {
		t.Fatalf("GET: %v", err)
	}
	if _, err := client.Do(context.Background(), http.MethodPost, "/customer", nil, map[string]string{"email": "a@b.co"}); err != nil {
		t.Fatalf("POST: %v", err)
	}
}

func TestMissingSecretKey(t *testing.T) {
	client := NewWithBaseURL("https://example.com", "")
	_, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
	if !errors.Is(err, ErrMissingSecretKey) {
		t.Fatalf("expected ErrMissingSecretKey, got %v", err)
	}
	if !IsAuthError(err) {
		t.Error("expected missing key to count as an auth error")
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		statusCode int
		body       string
		wantErr    bool
		wantMsg    string
	}{
		{"GET 200", http.MethodGet, 200, `{"status":true,"message":"Banks retrieved","data":[]}`, false, "Banks retrieved"},
		{"POST 201", http.MethodPost, 201, `{"status":true,"message":"Customer created","data":{"id":1}}`, false, "Customer created"},
		{"GET 400", http.MethodGet, 400, `{"status":false,"message":"Invalid key"}`, true, "Invalid key"},
		{"GET 404", http.MethodGet, 404, `{"status":false,"message":"Transaction reference not found"}`, true, "Transaction reference not found"},
		{"POST 401", http.MethodPost, 401, `{"status":false,"message":"Invalid key"}`, true, "Invalid key"},
		{"POST 422", http.MethodPost, 422, `{"status":false,"message":"Invalid Split code"}`, true, "Invalid Split code"},
		{"GET 500 non-JSON", http.MethodGet, 500, `<html>oops</html>`, true, "Internal Server Error"},
		{"200 with status false", http.MethodGet, 200, `{"status":false,"message":"Duplicate Transaction Reference"}`, true, "Duplicate Transaction Reference"},
		{"200 with status false and no message", http.MethodGet, 200, `{"status":false,"data":{"id":1}}`, true, "OK"},
		{"200 without status key", http.MethodGet, 200, `{"data":{"id":1}}`, false, ""},
		{"empty 200", http.MethodDelete, 200, ``, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			client.RetryConfig.Max5xxRetries = 0
			resp, err := client.Do(context.Background(), tt.method, "/x", nil, nil)
			if tt.wantErr {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %v", err)
				}
				if apiErr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
				}
				if apiErr.Message != tt.wantMsg {
					t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestAPIError_CodeTypeAndRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req-123")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid params","code":"invalid_params","type":"validation_error","errors":{"email":["is invalid"]}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Do(context.Background(), http.MethodPost, "/customer", nil, map[string]string{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "invalid_params" || apiErr.Type != "validation_error" {
		t.Errorf("Code/Type = %q/%q", apiErr.Code, apiErr.Type)
	}
	if apiErr.RequestID != "req-123" {
		t.Errorf("RequestID = %q", apiErr.RequestID)
	}
	if !strings.Contains(apiErr.Message, "email: is invalid") {
		t.Errorf("expected field errors in message, got %q", apiErr.Message)
	}
}

func TestQueryEncoding(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":[],"meta":{"total":12,"perPage":5,"page":1,"pageCount":3}}`))
	}))
	defer server.Close()

	from := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	resp, err := newTestClient(server.URL).Transactions().List(context.Background(), ListTransactionsParams{
		ListOptions: ListOptions{PerPage: 5, Page: 1, From: from},
		Status:      TransactionSuccess,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "from=2024-01-02T03%3A04%3A05Z&page=1&perPage=5&status=success"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if resp.Meta == nil || int(resp.Meta.Total) != 12 || !resp.Meta.HasMore() {
		t.Errorf("unexpected meta: %+v", resp.Meta)
	}
}

func TestGet_RetriesOn429(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"ok"}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Do(context.Background(), http.MethodGet, "/bank", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestPost_NoRetryOn429WithoutIdempotencyKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Do(context.Background(), http.MethodPost, "/transfer", nil, map[string]any{})
	if !IsRateLimitError(err) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestPost_RetriesOn5xxWithIdempotencyKey(t *testing.T) {
	var calls int32
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"Transfer has been queued"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.IdempotencyKey = "key-1"
	if _, err := client.Do(context.Background(), http.MethodPost, "/transfer", nil, map[string]any{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "key-1" || keys[1] != "key-1" {
		t.Fatalf("expected the same idempotency key on both attempts, got %v", keys)
	}
}

func TestPost_NoRetryOn5xxWithoutIdempotencyKey(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Do(context.Background(), http.MethodPost, "/charge", nil, map[string]any{}); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.RetryConfig.Max5xxRetries = 0
	client.circuitBreaker.threshold = 1
	client.circuitBreaker.resetTime = time.Hour

	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); err == nil {
		t.Fatal("expected error")
	}
	_, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
	if !IsCircuitBreakerError(err) {
		t.Fatalf("expected CircuitBreakerError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call before circuit opened, got %d", calls)
	}

	client.ResetCircuitBreaker()
	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); IsCircuitBreakerError(err) {
		t.Fatal("expected circuit to be closed after reset")
	}
}

func TestCircuitBreakerHalfOpenTrialSuccess(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"ok"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.RetryConfig.Max5xxRetries = 0
	client.circuitBreaker.threshold = 1
	client.circuitBreaker.resetTime = 10 * time.Millisecond

	_, _ = client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
	time.Sleep(20 * time.Millisecond)

	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); err != nil {
		t.Fatalf("trial request should succeed, got %v", err)
	}
	if client.circuitBreaker.open {
		t.Error("expected circuit closed after a successful trial")
	}
}

func TestCircuitBreakerHalfOpenAdmitsOneTrial(t *testing.T) {
	var calls int32
	entered := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
			return
		case 2:
			close(entered)
			<-release
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"ok"}`))
	}))
	defer server.Close()
	releaseOnce := sync.OnceFunc(func() { close(release) })
	defer releaseOnce()

	client := newTestClient(server.URL)
	client.RetryConfig.Max5xxRetries = 0
	client.circuitBreaker.threshold = 1
	client.circuitBreaker.resetTime = 10 * time.Millisecond

	_, _ = client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
	time.Sleep(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
		done <- err
	}()
	<-entered

	_, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil)
	if !IsCircuitBreakerError(err) {
		t.Fatalf("expected CircuitBreakerError while a trial is in flight, got %v", err)
	}

	releaseOnce()
	if err := <-done; err != nil {
		t.Fatalf("trial request should succeed, got %v", err)
	}
	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); err != nil {
		t.Fatalf("expected circuit closed after the trial, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
}

func TestCircuitBreakerHalfOpenClientErrorFreesTrial(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusInternalServerError)
		case 2:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":false,"message":"Transaction not found"}`))
		default:
			_, _ = w.Write([]byte(`{"status":true,"message":"ok"}`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.RetryConfig.Max5xxRetries = 0
	client.circuitBreaker.threshold = 1
	client.circuitBreaker.resetTime = 10 * time.Millisecond

	_, _ = client.Do(context.Background(), http.MethodGet, "/transaction/verify/missing", nil, nil)
	time.Sleep(20 * time.Millisecond)

	_, err := client.Do(context.Background(), http.MethodGet, "/transaction/verify/missing", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 APIError from the trial, got %v", err)
	}
	if client.circuitBreaker.halfOpen {
		t.Fatal("expected trial slot freed after a 4xx response")
	}

	if _, err := client.Do(context.Background(), http.MethodGet, "/balance", nil, nil); err != nil {
		t.Fatalf("expected next trial to be admitted, got %v", err)
	}
	if client.circuitBreaker.open {
		t.Error("expected circuit closed after a successful trial")
	}
}

func TestSetRetryConfig_UpdatesCircuitBreaker(t *testing.T) {
	client := newTestClient("https://example.com")
	cfg := RetryConfig{CircuitBreakerThreshold: 9, CircuitBreakerResetTime: time.Minute}
	client.SetRetryConfig(cfg)

	if client.RetryConfig.CircuitBreakerThreshold != 9 {
		t.Errorf("RetryConfig not updated")
	}
	if client.circuitBreaker.threshold != 9 || client.circuitBreaker.resetTime != time.Minute {
		t.Errorf("circuit breaker not updated: %+v", client.circuitBreaker)
	}
}

func TestDoRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":1}` {
			t.Errorf("body = %s", body)
		}
		if r.URL.Query().Get("x") != "y" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Header().Set("X-Custom", "1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":true}`))
	}))
	defer server.Close()

	body, header, status, err := newTestClient(server.URL).DoRaw(context.Background(), http.MethodPost, "/raw", map[string][]string{"x": {"y"}}, map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusCreated || header.Get("X-Custom") != "1" || string(body) != `{"status":true}` {
		t.Errorf("unexpected raw result: %d %v %s", status, header, body)
	}
}

func TestDoRaw_InvalidBodyMarshaling(t *testing.T) {
	_, _, _, err := newTestClient("https://example.com").DoRaw(context.Background(), http.MethodPost, "/x", nil, make(chan int))
	if err == nil || !strings.Contains(err.Error(), "marshal") {
		t.Fatalf("expected marshal error, got %v", err)
	}
}

func TestContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newTestClient(server.URL).Do(ctx, http.MethodGet, "/bank", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestResponseDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"id": 42, "reference": "ref-1", "amount": 50000, "currency": "NGN", "status": "success",
				"created_at": "2024-03-01T10:00:00.000Z",
			},
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Transactions().Verify(context.Background(), "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tx, err := DecodeData[Transaction](resp)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.ID != 42 || tx.Amount != 50000 || tx.Status != TransactionSuccess || tx.Currency != NGN {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if len(resp.Raw()) == 0 {
		t.Error("expected raw body to be kept")
	}
}

func TestRequestIDFromHeader(t *testing.T) {
	tests := []struct {
		header http.Header
		want   string
	}{
		{nil, ""},
		{http.Header{"X-Request-Id": {"a"}}, "a"},
		{http.Header{"X-Paystack-Request-Id": {"b"}}, "b"},
		{http.Header{"Cf-Ray": {"c"}}, "c"},
	}
	for _, tt := range tests {
		if got := requestIDFromHeader(tt.header); got != tt.want {
			t.Errorf("requestIDFromHeader(%v) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://api.paystack.co/bank/resolve?account_number=0123456789&bank_code=058")
	if strings.Contains(got, "0123456789") {
		t.Errorf("account number leaked: %s", got)
	}
	if !strings.Contains(got, "bank_code=058") {
		t.Errorf("bank_code dropped: %s", got)
	}
}
