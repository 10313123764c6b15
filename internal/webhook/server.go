// Package webhook receives Paystack webhook deliveries, verifies their
// signatures and hands verified events to a sink.
package webhook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

const (
	DefaultPath    = "/webhooks/paystack"
	MaxBodyBytes   = 1 << 20
	requestTimeout = 30 * time.Second
	shutdownGrace  = 5 * time.Second
)

// Sink receives each verified event with its raw body.
type Sink func(ctx context.Context, event *paystack.Event, body []byte) error

// Config controls a listener.
type Config struct {
	// Secret is the secret key Paystack signs deliveries with.
	Secret string
	Path   string
	// ForwardURL, when set, receives every verified delivery unchanged.
	ForwardURL string
	// RestrictIPs rejects deliveries that do not come from paystack.WebhookIPs.
	RestrictIPs bool
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

// Server is a webhook listener.
type Server struct {
	cfg     Config
	sink    Sink
	metrics *Metrics
	client  *http.Client
	logger  *slog.Logger
}

// NewServer builds a listener. sink may be nil.
func NewServer(cfg Config, sink Sink, logger *slog.Logger) (*Server, error) {
	if cfg.Secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		sink:    sink,
		metrics: NewMetrics(),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}, nil
}

// Metrics returns the listener's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Router returns the HTTP handler: the webhook path, /healthz and /metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if s.cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Post(s.cfg.Path, s.handleWebhook)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("webhook listener started", "addr", ln.Addr().String(), "path", s.cfg.Path)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.client.CloseIdleConnections()
	return nil
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { s.metrics.Duration.Observe(time.Since(start).Seconds()) }()

	if s.cfg.RestrictIPs && !paystack.IsPaystackIP(r.RemoteAddr) {
		s.reject(w, r, http.StatusForbidden, "forbidden_ip")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.reject(w, r, http.StatusRequestEntityTooLarge, "bad_payload")
		return
	}

	if !paystack.VerifySignature(s.cfg.Secret, body, r.Header.Get(paystack.SignatureHeader)) {
		s.reject(w, r, http.StatusUnauthorized, "bad_signature")
		return
	}

	event, err := paystack.ParseEvent(body)
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, "bad_payload")
		return
	}
	s.metrics.Events.WithLabelValues(event.Event).Inc()

	if s.sink != nil {
		if err := s.sink(r.Context(), event, body); err != nil {
			s.logger.Warn("webhook sink failed", "event", event.Event, "error", err)
		}
	}

	if s.cfg.ForwardURL != "" {
		if err := s.forward(r.Context(), body, r.Header.Get(paystack.SignatureHeader)); err != nil {
			s.logger.Warn("webhook forward failed", "url", s.cfg.ForwardURL, "error", err)
			s.reject(w, r, http.StatusBadGateway, "forward_error")
			return
		}
	}

	s.metrics.Requests.WithLabelValues("accepted").Inc()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, status int, result string) {
	s.metrics.Requests.WithLabelValues(result).Inc()
	s.logger.Debug("webhook rejected", "result", result, "remote", r.RemoteAddr,
		"request_id", middleware.GetReqID(r.Context()))
	http.Error(w, http.StatusText(status), status)
}

// forward relays a verified delivery. A non-2xx answer is an error so
// Paystack retries the delivery.
func (s *Server) forward(ctx context.Context, body []byte, signature string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ForwardURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(paystack.SignatureHeader, signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("forward target returned %d", resp.StatusCode)
	}
	return nil
}
