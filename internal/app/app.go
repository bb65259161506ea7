package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/compiler"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/specialistvlad/querygrid/internal/preview"
)

// ErrCompilationFailed is returned by Run when the graph compiled with errors.
var ErrCompilationFailed = errors.New("compilation failed")

// Loader reads a block graph from configuration paths.
type Loader interface {
	Load(ctx context.Context, paths ...string) (blockgraph.Graph, error)
}

// Encoder renders a block graph back into its configuration form.
type Encoder func(g blockgraph.Graph) ([]byte, error)

// Publisher receives every compilation result.
type Publisher interface {
	Publish(ctx context.Context, source string, res *compiler.Result) error
	Close() error
}

// Dialer opens a Publisher.
type Dialer func(ctx context.Context, opts preview.Options) (Publisher, error)

// DialPreview is the default Dialer, backed by the socket.io preview client.
func DialPreview(ctx context.Context, opts preview.Options) (Publisher, error) {
	return preview.Dial(ctx, opts)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader Loader
	encode Encoder
	dial   Dialer
}

// NewApp is the constructor for the main application. Compiled output goes
// to outW and logs go to logW, each App owning its own logger.
func NewApp(outW, logW io.Writer, cfg *Config, loader Loader, encode Encoder, dial Dialer) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	if dial == nil {
		dial = DialPreview
	}
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		encode: encode,
		dial:   dial,
	}
}

// Run loads the graph, compiles it, writes the result and publishes it to the
// preview surface when one is configured. It returns ErrCompilationFailed
// when the result carries errors.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "graph_path", a.config.GraphPath)

	g, err := a.loader.Load(ctx, a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	a.logger.Debug("Graph loaded.", "blocks", len(g.Blocks), "connections", len(g.Connections))

	if a.config.FormatGraph {
		src, err := a.encode(g)
		if err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		_, err = a.outW.Write(src)
		return err
	}

	res := compiler.Compile(ctx, g)
	a.logger.Info("Compilation finished.", "ok", res.OK(), "errors", len(res.Errors), "warnings", len(res.Warnings))

	if err := render(a.outW, a.config.OutputFormat, res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if a.config.PreviewURL != "" {
		a.publish(ctx, res)
	}

	a.logger.Debug("App.Run method finished.")
	if !res.OK() {
		return ErrCompilationFailed
	}
	return nil
}

// publish sends res to the preview surface. Preview problems never change
// the outcome of a run; they are logged as warnings.
func (a *App) publish(ctx context.Context, res *compiler.Result) {
	pub, err := a.dial(ctx, preview.Options{
		URL:       a.config.PreviewURL,
		Namespace: a.config.PreviewNamespace,
		Event:     a.config.PreviewEvent,
		Timeout:   a.config.PreviewTimeout,

		InsecureSkipVerify: a.config.PreviewInsecureSkipVerify,
	})
	if err != nil {
		a.logger.Warn("Preview unavailable.", "error", err)
		return
	}
	defer func() {
		if err := pub.Close(); err != nil {
			a.logger.Warn("Failed to close preview connection.", "error", err)
		}
	}()

	if err := pub.Publish(ctx, a.config.GraphPath, res); err != nil {
		a.logger.Warn("Failed to publish compiled query.", "error", err)
		return
	}
	a.logger.Info("Published compiled query to preview.", "url", a.config.PreviewURL)
}
