// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main; everything else uses Get or Component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options are read by the first Init call only.
type Options struct {
	// Level is one of trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service is added to every entry as "service" when set.
	Service string
}

var (
	mu     sync.Mutex
	once   sync.Once
	root   zerolog.Logger
	loaded bool
)

// Init builds the logger on first call and returns it. Later calls return the
// same logger and ignore their options.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		zerolog.TimeFieldFormat = time.RFC3339Nano

		var out io.Writer = os.Stdout
		if opts.Output != nil {
			out = opts.Output
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		c := zerolog.New(out).Level(level).With().Timestamp().Caller()
		if opts.Service != "" {
			c = c.Str("service", opts.Service)
		}
		root = c.Logger()
		loaded = true
	})
	return Get()
}

// Get returns the logger built by Init and panics if Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !loaded {
		panic("logger: Get() called before Init()")
	}
	return root
}

// Component tags the logger with the subsystem that owns it. Services and
// repositories each get their own.
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

// Reset forgets the current logger so tests can call Init again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	once = sync.Once{}
	root = zerolog.Logger{}
	loaded = false
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	switch level, err := zerolog.ParseLevel(s); {
	case err != nil, level == zerolog.NoLevel, level > zerolog.ErrorLevel:
		return zerolog.InfoLevel
	default:
		return level
	}
}
