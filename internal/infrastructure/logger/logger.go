package logger

import (
	"log"
	"os"

	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// StdLogger is a simple logger that uses the standard log package.
type StdLogger struct {
	l     *log.Logger
	debug bool
}

// NewStdLogger creates a new StdLogger. Debug lines are dropped unless LOG_DEBUG is set.
func NewStdLogger() usecasecontract.IAppLogger {
	return &StdLogger{
		l:     log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
		debug: os.Getenv("LOG_DEBUG") != "",
	}
}

// Debugf logs a debug message.
func (s *StdLogger) Debugf(format string, args ...interface{}) {
	if !s.debug {
		return
	}
	s.l.Printf("[DEBUG] "+format, args...)
}

// Infof logs an info message.
func (s *StdLogger) Infof(format string, args ...interface{}) {
	s.l.Printf("[INFO] "+format, args...)
}

// Warnf logs a warning message.
func (s *StdLogger) Warnf(format string, args ...interface{}) {
	s.l.Printf("[WARN] "+format, args...)
}

// Errorf logs an error message.
func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("[ERROR] "+format, args...)
}

// Fatalf logs a fatal message and exits.
func (s *StdLogger) Fatalf(format string, args ...interface{}) {
	s.l.Fatalf("[FATAL] "+format, args...)
}
