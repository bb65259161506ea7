package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/querygrid/internal/app"
	"github.com/specialistvlad/querygrid/internal/preview"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("querygrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
QueryGrid - compiles visual block graphs into Cypher queries.

Usage:
  querygrid [options] [GRAPH_PATH]

Arguments:
  GRAPH_PATH
    Path to a single .hcl / .hcl.json file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fmtFlag := flagSet.Bool("fmt", false, "Print the loaded graph as canonical HCL instead of compiling it.")
	outputFlag := flagSet.String("output", app.OutputText, "Result format. Options: 'text' or 'json'.")
	previewURLFlag := flagSet.String("preview-url", "", "socket.io server to publish the compiled query to. Empty disables publishing.")
	previewNamespaceFlag := flagSet.String("preview-namespace", "/", "socket.io namespace for the preview.")
	previewEventFlag := flagSet.String("preview-event", preview.DefaultEvent, "Event name used when publishing.")
	previewInsecureFlag := flagSet.Bool("preview-insecure-skip-verify", false, "Skip TLS certificate verification for the preview server.")
	previewTimeoutFlag := flagSet.Duration("preview-timeout", preview.DefaultTimeout, "How long to wait for the preview connection.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Graph path determined.", "path", path)

	if path == "" {
		slog.Debug("No graph path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	outputFormat := strings.ToLower(*outputFlag)
	if outputFormat != app.OutputText && outputFormat != app.OutputJSON {
		return nil, false, &ExitError{Code: 2, Message: "invalid output: must be 'text' or 'json'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPath:        path,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		OutputFormat:     outputFormat,
		FormatGraph:      *fmtFlag,
		PreviewURL:       *previewURLFlag,
		PreviewNamespace: *previewNamespaceFlag,
		PreviewEvent:     *previewEventFlag,
		PreviewTimeout:   *previewTimeoutFlag,

		PreviewInsecureSkipVerify: *previewInsecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
