package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses durationStr, falling back to def when it is invalid.
// It logs through the global logger since it may run before configuration.
func ParseDuration(durationStr string, def time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("duration", durationStr).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return duration
}
