package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fbrnila/go-dms-dav/uc"
)

type zerologSink struct {
	log zerolog.Logger
}

// New returns a leveled sink writing human-readable lines to w. Debug
// lines are dropped unless debug is set.
func New(w io.Writer, debug bool) uc.Debug {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return zerologSink{log: log}
}

// Nop returns a sink that drops everything.
func Nop() uc.Debug {
	return zerologSink{log: zerolog.Nop()}
}

func (l zerologSink) Debug(v ...interface{}) {
	l.log.Debug().Msg(join(v))
}

func (l zerologSink) Info(v ...interface{}) {
	l.log.Info().Msg(join(v))
}

func (l zerologSink) Err(v ...interface{}) {
	l.log.Error().Msg(join(v))
}

func join(v []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}
