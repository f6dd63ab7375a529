// Package timezone keeps the application clock and the calendar parsing rules
// used by bookings.
//
// Timestamps (created_at, modified_at) are produced by Now in the configured
// APP_TIMEZONE. Stay dates are calendar dates with no zone: ParseDate reads
// them as midnight UTC so that comparison and storage never shift a day.
//
//	now := timezone.Now()
//	day, err := timezone.ParseDate("2025-06-01")
//	clock, err := timezone.ParseClock("14:30")
package timezone
