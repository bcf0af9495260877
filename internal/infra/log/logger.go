package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gaia/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Config *config.Config
}

// New builds the server logger: JSON to stdout, or text when log.pretty is set.
// Every record carries the service name and environment.
func New(params Params) (*slog.Logger, error) {
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	logger := slog.New(newHandler(os.Stdout, level, params.Config.Env.Log.Pretty))

	if name := params.Config.Env.ServiceName; name != "" {
		logger = logger.With(slog.String("service", name))
	}
	if env := params.Config.Env.Env; env != "" {
		logger = logger.With(slog.String("env", env))
	}

	return logger, nil
}

// NewCLI builds the command-line logger: text to w, debug when verbose, warnings otherwise.
func NewCLI(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(newHandler(w, level, true))
}

func newHandler(w io.Writer, level slog.Level, pretty bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if pretty {
		return slog.NewTextHandler(w, opts)
	}

	return slog.NewJSONHandler(w, opts)
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
