package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"ecodash/config"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	appLocation = Load(config.Get().App.Timezone)

	log.Debug().Str("location", appLocation.String()).Msg("Application timezone initialized")
}

// Load resolves an IANA zone name such as "Asia/Jakarta". Empty or unknown
// names resolve to UTC.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts t to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Format formats t in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
}

// ParseInstant parses an ISO-8601 timestamp that carries an explicit UTC
// offset ("Z" or "+hh:mm") and returns it in UTC. Naive timestamps are rejected.
func ParseInstant(value string) (time.Time, error) {
	var err error

	for _, layout := range instantLayouts {
		var t time.Time

		t, err = time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing instant %q: %w", value, err)
}
