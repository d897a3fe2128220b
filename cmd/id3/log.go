package main

import (
	"io"
	"time"

	"github.com/pbanos/id3/pkg/errors"
	"github.com/rs/zerolog"
)

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

/*
logError logs err at error level with the given message, adding the fields of
the first id3 error kind found in its chain.
*/
func logError(logger zerolog.Logger, err error, msg string) {
	event := logger.Error().Err(err)
	var invalidInput *errors.InvalidInputError
	var imputation *errors.ImputationError
	var unseenValue *errors.UnseenValueError
	switch {
	case errors.As(err, &invalidInput):
		event = event.EmbedObject(invalidInput)
	case errors.As(err, &imputation):
		event = event.EmbedObject(imputation)
	case errors.As(err, &unseenValue):
		event = event.EmbedObject(unseenValue)
	}
	event.Msg(msg)
}
