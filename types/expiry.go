package types

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Never is the lifetime token meaning no expiration. It bypasses date
// computation entirely and is stamped on the resource verbatim.
const Never = "never"

// DateFormat is the calendar date layout used in expiration tags.
const DateFormat = "2006-01-02"

// DefaultLifetime is applied when no lifetime flag is given.
const DefaultLifetime = "1d"

var lifetimePattern = regexp.MustCompile(`^(\d+)([dwm]?)$`)

// Expiry is either a concrete calendar date or the explicit
// no-expiration variant. The zero value is not valid; construct via
// ParseLifetime, ExpiresOn or NeverExpires.
type Expiry struct {
	date  time.Time
	never bool
}

// NeverExpires returns the no-expiration variant.
func NeverExpires() Expiry {
	return Expiry{never: true}
}

// ExpiresOn returns an expiry at the given date, reduced to a calendar
// day in the date's own location. Truncating on the absolute timeline
// would shift the day near midnight in zones away from UTC.
func ExpiresOn(date time.Time) Expiry {
	y, m, d := date.Date()
	return Expiry{date: time.Date(y, m, d, 0, 0, 0, 0, date.Location())}
}

// IsNever reports whether this expiry is the no-expiration variant.
func (e Expiry) IsNever() bool {
	return e.never
}

// Date returns the expiration date. The bool is false for the
// no-expiration variant.
func (e Expiry) Date() (time.Time, bool) {
	if e.never {
		return time.Time{}, false
	}
	return e.date, true
}

// String renders the tag value: the date as YYYY-MM-DD, or the literal
// never token.
func (e Expiry) String() string {
	if e.never {
		return Never
	}
	return e.date.Format(DateFormat)
}

// ParseLifetime converts a lifetime token into an Expiry relative to now.
// Accepted forms: "never", "<n>d" (days), "<n>w" (weeks), "<n>m" (months),
// or a bare count of days. An empty token means DefaultLifetime.
func ParseLifetime(token string, now time.Time) (Expiry, error) {
	if token == "" {
		token = DefaultLifetime
	}
	if token == Never {
		return NeverExpires(), nil
	}

	m := lifetimePattern.FindStringSubmatch(token)
	if m == nil {
		return Expiry{}, fmt.Errorf("invalid lifetime %q: want <n>d, <n>w, <n>m or %q", token, Never)
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return Expiry{}, fmt.Errorf("invalid lifetime %q: count must be a positive integer", token)
	}

	var date time.Time
	switch m[2] {
	case "", "d":
		date = now.AddDate(0, 0, n)
	case "w":
		date = now.AddDate(0, 0, 7*n)
	case "m":
		date = now.AddDate(0, n, 0)
	}
	return ExpiresOn(date), nil
}

// ExpiredTag reports whether an expires-on tag value lies strictly before
// today. The never token and unparseable values never count as expired.
func ExpiredTag(value string, now time.Time) bool {
	if value == "" || value == Never {
		return false
	}
	date, err := time.Parse(DateFormat, value)
	if err != nil {
		return false
	}
	today, _ := time.Parse(DateFormat, now.Format(DateFormat))
	return date.Before(today)
}
