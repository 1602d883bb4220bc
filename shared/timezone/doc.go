// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Current time and conversion into the app timezone:
//     now := timezone.Now()
//     appTime := timezone.ToAppTime(someTime)
//
//  2. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
//  3. Parsing an offset-aware instant into UTC:
//     t, err := timezone.ParseInstant("2030-01-01T10:00:00+07:00")
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Asia/Jakarta", "America/New_York", "Europe/London"
//
// Stored and exchanged instants are always UTC (see ParseInstant); the app
// timezone only affects log-facing formatting. It is configured via APP_TIMEZONE
// and is automatically initialized when the package is imported.
package timezone
