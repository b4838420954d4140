package testhelp

import (
	"github.com/rs/zerolog"
	"os"
)

func Logger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).
		Level(zerolog.WarnLevel).
		With().
		Timestamp().
		Str("service", "ashStore").
		Str("env", "test").
		Logger()
}
