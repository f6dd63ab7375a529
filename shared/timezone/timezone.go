package timezone

import (
	"fmt"
	"hotel/config"
	"hotel/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if err := Setup(cfg.App.Timezone); err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Kolkata', 'UTC'")
	}
}

// Setup loads the named IANA location. An empty name selects UTC.
func Setup(name string) error {
	if name == "" {
		appLocation = time.UTC

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation = time.UTC

		return fmt.Errorf("failed to load location %q: %w", name, err)
	}

	appLocation = loc

	return nil
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Parse parses a time string in the application timezone
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	day, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", value, err)
	}

	return day, nil
}

// FormatDate renders a calendar date without converting zones.
func FormatDate(t time.Time) string {
	return t.Format(constant.DateOnlyFormat)
}

// ParseClock reads a wall-clock time as HH:MM or HH:MM:SS and returns it
// normalized to HH:MM.
func ParseClock(value string) (string, error) {
	for _, layout := range []string{constant.ClockFormat, constant.ClockFullFormat} {
		if clock, err := time.Parse(layout, value); err == nil {
			return clock.Format(constant.ClockFormat), nil
		}
	}

	return "", fmt.Errorf("failed to parse time %q", value)
}
