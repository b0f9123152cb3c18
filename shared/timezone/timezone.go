// Package timezone keeps every timestamp the service produces in the
// location named by APP_TIMEZONE (an IANA name such as "Asia/Jakarta").
// UTC is used when the variable is empty or unknown.
package timezone

import (
	"sync"
	"time"

	"seatq/config"

	"github.com/rs/zerolog/log"
)

var (
	once     sync.Once
	location = time.UTC
)

func load() {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("configuration incomplete, reading timezone anyway")
	}

	name := cfg.App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

		return
	}

	location = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Location returns the application timezone, loading it on first use.
func Location() *time.Location {
	once.Do(load)

	return location
}

// SetLocation overrides the application timezone.
func SetLocation(loc *time.Location) {
	once.Do(func() {})

	location = loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
