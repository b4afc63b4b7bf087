// Package broadcast publishes git graph sink calls to a socket.io server so
// that live viewers can replay a normalization pass as it happens.
package broadcast

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/vk/gitgraphgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds Dial when Options.ConnectTimeout is zero.
const DefaultConnectTimeout = 15 * time.Second

// Options configures the socket.io connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Emitter is the part of a socket.io client the Sink needs.
type Emitter interface {
	Emit(ev string, args ...any) error
}

// Client is a connected socket.io client.
type Client struct {
	io     *socket.Socket
	logger *slog.Logger
}

// Dial connects to the socket.io server described by opts and waits for the
// connect event.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("component", "broadcast", "url", opts.URL)
	logger.Info("Connecting to socket.io server...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("failed to parse URL: %q needs a scheme and host", opts.URL)
	}

	sopts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		sopts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}
	io := manager.Socket(namespace, sopts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, ok := errs[0].(error)
		if !ok {
			err = fmt.Errorf("%v", errs[0])
		}
		connectChan <- err
	})

	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &Client{io: io, logger: logger}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Emit sends one event.
func (c *Client) Emit(ev string, args ...any) error {
	return c.io.Emit(ev, args...)
}

// Close disconnects from the server.
func (c *Client) Close() error {
	c.logger.Info("Disconnecting from socket.io server", "sid", c.io.Id())
	c.io.Disconnect()
	return nil
}
