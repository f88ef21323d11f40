// Package zerolog adapts a zerolog.Logger to cachestore.Logger.
package zerolog

import (
	"github.com/rs/zerolog"
	"github.com/unkn0wn-root/cachestore"
)

var _ cachestore.Logger = Logger{}

type Logger struct{ L zerolog.Logger }

// New tags every event with component=cachestore.
func New(l zerolog.Logger) Logger {
	return Logger{L: l.With().Str("component", "cachestore").Logger()}
}

func (z Logger) Debug(msg string, f cachestore.Fields) { z.L.Debug().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Info(msg string, f cachestore.Fields)  { z.L.Info().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Warn(msg string, f cachestore.Fields)  { z.L.Warn().Fields(map[string]any(f)).Msg(msg) }
func (z Logger) Error(msg string, f cachestore.Fields) { z.L.Error().Fields(map[string]any(f)).Msg(msg) }
