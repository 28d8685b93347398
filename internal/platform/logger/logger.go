package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options controla la construcción del logger raíz.
type Options struct {
	Level  string // debug|info|warn|error (default info)
	Format string // text|json (default text)
	App    string // nombre de la app, se agrega como campo fijo
}

// New crea el logger raíz del proceso sobre zerolog.
// Formato "text" usa ConsoleWriter (dev); "json" escribe líneas JSON (prod).
func New(opts Options) zerolog.Logger {
	var l zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "json":
		l = zerolog.New(os.Stdout)
	default:
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx := l.Level(ParseLevel(opts.Level)).With().Timestamp()
	if app := strings.TrimSpace(opts.App); app != "" {
		ctx = ctx.Str("app", app)
	}
	return ctx.Logger()
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=vet-clinic (opcional)
func NewFromEnv() zerolog.Logger {
	return New(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		App:    os.Getenv("APP_NAME"),
	})
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
