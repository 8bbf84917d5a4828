package internal

import "time"

// Common cache lifetimes.
const (
	AnHour = time.Hour
	ADay   = 24 * AnHour
	AWeek  = 7 * ADay
	AMonth = 30 * ADay
	AYear  = 365 * ADay
)
