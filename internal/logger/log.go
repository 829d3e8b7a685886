package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	log  *Logger
	once sync.Once
)

// Fields is an alias so callers do not need to import logrus directly.
type Fields = logrus.Fields

type Logger struct {
	*logrus.Logger
}

type Entry struct {
	*logrus.Entry
}

func (l *Logger) Warn(args ...interface{}) {
	warnFatal(args...)
	l.Logger.Warn(args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	l.Logger.Warnf(format, args...)
}

func (l *Logger) Error(args ...interface{}) {
	warnFatal(args...)
	l.Logger.Error(args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	warnFatalf(format, args...)
	l.Logger.Errorf(format, args...)
}

func (l *Logger) WithField(key string, value interface{}) *Entry {
	return &Entry{l.Logger.WithField(key, value)}
}

func (l *Logger) WithFields(fields Fields) *Entry {
	return &Entry{l.Logger.WithFields(fields)}
}

func (l *Logger) WithError(err error) *Entry {
	return &Entry{l.Logger.WithError(err)}
}

func (e *Entry) Warn(args ...interface{}) {
	warnFatal(args...)
	e.Entry.Warn(args...)
}

func (e *Entry) Error(args ...interface{}) {
	warnFatal(args...)
	e.Entry.Error(args...)
}

func (e *Entry) WithField(key string, value interface{}) *Entry {
	return &Entry{e.Entry.WithField(key, value)}
}

func (e *Entry) WithFields(fields Fields) *Entry {
	return &Entry{e.Entry.WithFields(fields)}
}

func (e *Entry) WithError(err error) *Entry {
	return &Entry{e.Entry.WithError(err)}
}

func warnFatal(args ...interface{}) {
	if failFast != "" {
		log.Logger.Fatal(args...)
	}
}

func warnFatalf(format string, args ...interface{}) {
	if failFast != "" {
		log.Logger.Fatalf(format, args...)
	}
}

var failFast string

// InitializeStegoLogger configures the shared logger from the environment.
// Output is discarded unless DEBUG_STEGO is set; WARNFAIL_STEGO makes
// warnings and errors fatal.
func InitializeStegoLogger() {
	once.Do(func() {
		log = &Logger{}
		log.Logger = logrus.New()
		log.SetOutput(io.Discard)
		log.SetLevel(logrus.PanicLevel)
		if logLevel := os.Getenv("DEBUG_STEGO"); logLevel != "" {
			failFast = os.Getenv("WARNFAIL_STEGO")
			if failFast != "" {
				logLevel = "debug"
			}
			log.SetOutput(os.Stderr)
			switch strings.ToLower(logLevel) {
			case "debug":
				log.SetLevel(logrus.DebugLevel)
			case "warn":
				log.SetLevel(logrus.WarnLevel)
			case "error":
				log.SetLevel(logrus.ErrorLevel)
			default:
				log.SetLevel(logrus.DebugLevel)
			}
			log.WithField("level", log.GetLevel()).Debug("Logging enabled.")
		}
	})
}

// GetStegoLogger returns the initialized Logger
func GetStegoLogger() *Logger {
	if log == nil {
		InitializeStegoLogger()
	}
	return log
}

// SetLevel overrides the level chosen from the environment, routing output to
// stderr. Used by the --verbose flag.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l := GetStegoLogger()
	l.SetOutput(os.Stderr)
	l.Logger.SetLevel(lvl)
	return nil
}

func init() {
	InitializeStegoLogger()
}
