// Package muhurat computes ritual-timing windows from a lunar calendar
// approximation. All functions are pure: the same date always produces the
// same answer, with no I/O and no clock access.
package muhurat

import (
	"math"
	"time"
)

// synodicMonthDays is the mean length of a lunation in days.
const synodicMonthDays = 29.5305888

// newMoonEpoch is a reference new moon (2000-01-06 18:14 UTC). Tithi is the
// elapsed fraction of the current lunation split into 30 lunar days.
//
// This is a deterministic arithmetic approximation, not an ephemeris: it
// ignores the eccentricity of the lunar orbit, so a computed tithi can be off
// by roughly one day around perigee/apogee. The signature is stable so a true
// panchang backend can replace the body later.
var newMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

// Tithi returns the lunar-day index in [1,30] for the given calendar date,
// evaluated at UTC midnight. Index 30 is amavasya (new-moon day).
func Tithi(date time.Time) int {
	d := atMidnight(date)

	days := d.Sub(newMoonEpoch).Hours() / 24
	phase := math.Mod(days, synodicMonthDays)
	if phase < 0 {
		phase += synodicMonthDays
	}

	tithi := int(phase/synodicMonthDays*30) + 1
	if tithi < 1 {
		tithi = 1
	}
	if tithi > 30 {
		tithi = 30
	}
	return tithi
}

// Vara returns the weekday index in [0,6] (0 = Sunday) under UTC.
func Vara(date time.Time) int {
	return int(atMidnight(date).Weekday())
}

func atMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var tithiNames = [...]string{
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Purnima",
	"Pratipada", "Dwitiya", "Tritiya", "Chaturthi", "Panchami",
	"Shashthi", "Saptami", "Ashtami", "Navami", "Dashami",
	"Ekadashi", "Dwadashi", "Trayodashi", "Chaturdashi", "Amavasya",
}

// TithiName returns the Sanskrit name of a lunar-day index.
func TithiName(tithi int) string {
	if tithi < 1 || tithi > 30 {
		return ""
	}
	return tithiNames[tithi-1]
}

var varaNames = [...]string{
	"Ravivar", "Somvar", "Mangalvar", "Budhvar", "Guruvar", "Shukravar", "Shanivar",
}

// VaraName returns the Hindi weekday name for an index in [0,6].
func VaraName(vara int) string {
	if vara < 0 || vara > 6 {
		return ""
	}
	return varaNames[vara]
}
