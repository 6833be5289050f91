package env

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

const (
	DelayVar           = "DEBUGHOVER_DELAY"
	EvaluateTimeoutVar = "DEBUGHOVER_EVALUATE_TIMEOUT"
	LogLevelVar        = "DEBUGHOVER_LOG_LEVEL"
)

const (
	defaultDelay           = 300 * time.Millisecond
	defaultEvaluateTimeout = 5 * time.Second
)

type Env struct {
	// HoverDelay is the quiescence window for debounced hover requests.
	HoverDelay time.Duration
	// EvaluateTimeout bounds each debug/evaluate round trip to the client.
	EvaluateTimeout time.Duration
	LogLevel        slog.Level
}

func Default() *Env {
	return &Env{
		HoverDelay:      defaultDelay,
		EvaluateTimeout: defaultEvaluateTimeout,
		LogLevel:        slog.LevelInfo,
	}
}

// FromOS reads the process environment on top of Default.
func FromOS() (*Env, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup reads every variable on top of Default and reports all
// malformed ones at once.
func FromLookup(lookup func(string) (string, bool)) (*Env, error) {
	env := Default()
	var errs error
	if v, ok := lookup(DelayVar); ok {
		d, err := ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", DelayVar, err))
		} else {
			env.HoverDelay = d
		}
	}
	if v, ok := lookup(EvaluateTimeoutVar); ok {
		d, err := ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EvaluateTimeoutVar, err))
		} else {
			env.EvaluateTimeout = d
		}
	}
	if v, ok := lookup(LogLevelVar); ok {
		l, err := ParseLogLevel(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", LogLevelVar, err))
		} else {
			env.LogLevel = l
		}
	}
	if errs != nil {
		return nil, errs
	}
	return env, nil
}

// ParseDuration accepts Go durations ("250ms") and bare milliseconds ("250").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		ms, parseErr := strconv.ParseInt(s, 10, 64)
		if parseErr != nil {
			return 0, err
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, err
	}
	return l, nil
}
