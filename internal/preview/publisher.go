// Package preview pushes compiled queries to a live text-preview surface over
// socket.io, so an editor can show the statement while the diagram changes.
package preview

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/specialistvlad/querygrid/internal/compiler"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultEvent   = "query:compiled"
	DefaultTimeout = 10 * time.Second
)

// Options configures a Publisher.
type Options struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Message is the payload published for each compilation.
type Message struct {
	Source string           `json:"source"`
	Result *compiler.Result `json:"result"`
}

// Publisher is a connected preview client.
type Publisher struct {
	event  string
	logger *slog.Logger
	client *socket.Socket
}

// withDefaults fills unset fields and validates the rest.
func (o Options) withDefaults() (Options, *url.URL, error) {
	if o.URL == "" {
		return o, nil, errors.New("preview URL is required")
	}
	parsed, err := url.Parse(o.URL)
	if err != nil {
		return o, nil, fmt.Errorf("failed to parse preview URL: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return o, nil, fmt.Errorf("unsupported preview URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return o, nil, fmt.Errorf("preview URL %q has no host", o.URL)
	}
	if o.Namespace == "" {
		o.Namespace = "/"
	}
	if o.Event == "" {
		o.Event = DefaultEvent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o, parsed, nil
}

// Dial connects to the preview server and waits for the namespace handshake.
func Dial(ctx context.Context, opts Options) (*Publisher, error) {
	opts, parsedURL, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("component", "preview", "url", opts.URL, "namespace", opts.Namespace)

	sockOpts := socket.DefaultOptions()
	if path := strings.TrimSuffix(parsedURL.Path, "/"); path != "" {
		sockOpts.SetPath(path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	client := manager.Socket(opts.Namespace, sockOpts)

	connected := make(chan error, 1)
	report := func(err error) {
		select {
		case connected <- err:
		default:
		}
	}
	client.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Preview connected.", "sid", client.Id())
		report(nil)
	})
	client.Once(types.EventName("connect_error"), func(errs ...any) {
		report(connectError(errs))
	})

	logger.Debug("Connecting to preview server...")
	client.Connect()

	select {
	case err := <-connected:
		if err != nil {
			client.Disconnect()
			return nil, fmt.Errorf("preview connection failed: %w", err)
		}
	case <-ctx.Done():
		client.Disconnect()
		return nil, fmt.Errorf("preview connection cancelled: %w", ctx.Err())
	case <-time.After(opts.Timeout):
		client.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for preview connection", opts.Timeout)
	}

	return &Publisher{event: opts.Event, logger: logger, client: client}, nil
}

// connectError extracts the cause from the arguments of a connect_error event.
func connectError(args []any) error {
	if len(args) == 0 || args[0] == nil {
		return errors.New("connect_error without details")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("%v", args[0])
}

// Publish sends one compilation result. Delivery is best effort: the call
// returns once the packet is handed to the transport.
func (p *Publisher) Publish(ctx context.Context, source string, res *compiler.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.Debug("Publishing compiled query.", "event", p.event, "ok", res.OK())
	p.client.Emit(p.event, Message{Source: source, Result: res})
	return nil
}

// Close disconnects from the preview server.
func (p *Publisher) Close() error {
	p.logger.Debug("Closing preview connection.", "sid", p.client.Id())
	p.client.Disconnect()
	return nil
}
