package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-yaml"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/parser"
)

// maxBodyBytes caps the size of a submitted document.
const maxBodyBytes = 4 << 20

// Router builds the HTTP API.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", a.healthHandler)
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Post("/gitgraph", a.handleNormalize)
	})
	return r
}

// requestLogger puts a request-scoped logger into the context and records
// every request in the log and the HTTP metrics.
func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := a.logger.With("request_id", chimiddleware.GetReqID(r.Context()))
		r = r.WithContext(ctxlog.WithLogger(r.Context(), logger))

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		a.metrics.ObserveHTTP(r.Method, route, status, elapsed)
		logger.Info("HTTP request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
		)
	})
}

// handleNormalize accepts a document in the body and answers with the
// recorded calls or the resulting state.
func (a *App) handleNormalize(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = a.config.Input.Format
	}
	if format == "" {
		format = parser.FormatHCL
	}
	mode := q.Get("output")
	if mode == "" {
		mode = a.config.Output.Mode
	}
	encoding := q.Get("encoding")
	if encoding == "" {
		encoding = EncodingJSON
	}

	if err := CheckOutput(mode, encoding); err != nil {
		a.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		a.writeError(w, r, status, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	res, err := a.Normalize(r.Context(), Source{Text: body, Format: format, Filename: "request." + format})
	if err != nil {
		a.writeError(w, r, statusFor(err), err)
		return
	}
	out, err := Encode(res, mode, encoding)
	if err != nil {
		a.writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentType(encoding))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrParse),
		errors.Is(err, parser.ErrUnknownFormat),
		errors.Is(err, ErrUnknownOutput):
		return http.StatusBadRequest
	case errors.Is(err, ErrPopulate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func contentType(encoding string) string {
	if encoding == EncodingYAML {
		return "application/yaml"
	}
	return "application/json"
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	ctxlog.FromContext(r.Context()).Warn("Request failed.", "status", status, "error", err)
	body, mErr := yaml.MarshalWithOptions(map[string]string{"error": err.Error()}, yaml.JSON())
	if mErr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Serve runs the HTTP API on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Server.Addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	ctx = a.Context(ctx)
	a.httpServer = &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", "address", ln.Addr().String())
		errCh <- a.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("HTTP server shut down gracefully.")
	return a.Close()
}
