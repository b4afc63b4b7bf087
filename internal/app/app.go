package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vk/gitgraphgo/internal/broadcast"
	"github.com/vk/gitgraphgo/internal/config"
	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/vk/gitgraphgo/internal/metrics"
)

// Publisher is a live connection the broadcaster emits through.
type Publisher interface {
	broadcast.Emitter
	Close() error
}

// DialFunc opens a Publisher.
type DialFunc func(ctx context.Context, opts broadcast.Options) (Publisher, error)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *config.Config
	metrics *metrics.Collector

	dial      DialFunc
	pubMu     sync.Mutex
	publisher Publisher

	httpServer *http.Server
}

// Option customizes an App.
type Option func(*App)

// WithDialer replaces the socket.io dialer used when publishing is enabled.
func WithDialer(dial DialFunc) Option {
	return func(a *App) { a.dial = dial }
}

// WithMetrics makes the App report into c instead of a private collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *App) { a.metrics = c }
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW, each App with its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *config.Config, opts ...Option) *App {
	logger := newLogger(cfg.Log.Level, cfg.Log.Format, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		dial: func(ctx context.Context, opts broadcast.Options) (Publisher, error) {
			return broadcast.Dial(ctx, opts)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = metrics.NewCollector(metrics.DefaultNamespace)
	}
	return a
}

// Context returns ctx carrying the App's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Metrics returns the App's collector. This is primarily for testing.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// publisherFor returns the shared broadcast connection, dialing it on first
// use. It returns nil when publishing is not configured.
func (a *App) publisherFor(ctx context.Context) (Publisher, error) {
	if a.config.Publish.URL == "" {
		return nil, nil
	}

	a.pubMu.Lock()
	defer a.pubMu.Unlock()
	if a.publisher != nil {
		return a.publisher, nil
	}

	p, err := a.dial(ctx, broadcast.Options{
		URL:                a.config.Publish.URL,
		Namespace:          a.config.Publish.Namespace,
		InsecureSkipVerify: a.config.Publish.InsecureSkipVerify,
		ConnectTimeout:     a.config.Publish.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.publisher = p
	return p, nil
}

// Close releases the broadcast connection, if one was opened.
func (a *App) Close() error {
	a.pubMu.Lock()
	defer a.pubMu.Unlock()
	if a.publisher == nil {
		return nil
	}
	err := a.publisher.Close()
	a.publisher = nil
	return err
}
