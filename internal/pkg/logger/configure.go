package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/meur/cs2hub/internal/config"
)

// Configure points the global logger at stdout.
func Configure(conf config.Common) {
	var w io.Writer = os.Stdout
	if !conf.LogJsonStdout {
		w = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339Nano,
		}
	}
	setup(conf, w)
}

// ConfigureFile points the global logger at an append-only file, for programs that own the terminal.
// The returned file should be closed on exit.
func ConfigureFile(conf config.Common, path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}
	setup(conf, f)
	return f, nil
}

func setup(conf config.Common, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.DebugLevel
	if conf.DevMode {
		level = zerolog.TraceLevel
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(level)
}
