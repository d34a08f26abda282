package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out at the given level.
// Unknown levels fall back to info.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// Discard returns a logger that drops everything, for tests and the TUI.
func Discard() *logrus.Logger {
	return New("panic", io.Discard)
}
