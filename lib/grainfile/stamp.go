// Copyright 2026 The Grainmirror Authors
// SPDX-License-Identifier: Apache-2.0

package grainfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// holoceneOffset converts a Gregorian year to the 5-digit Holocene
// year used in stamps.
const holoceneOffset = 10000

var stampPattern = regexp.MustCompile(`^(\d{5})-(\d{2})-(\d{2})--(\d{4})-([a-z]{3,4})$`)

// Stamp is a tagged-filename timestamp: local wall time down to the
// minute plus a lowercase zone label. Stamps order totally by their
// integer key; the zone label is cosmetic.
type Stamp struct {
	// Year is the 5-digit Holocene year (Gregorian + 10000).
	Year int

	Month  int
	Day    int
	Hour   int
	Minute int

	// Zone is the 3-4 lowercase-letter timezone label (e.g. "pdt").
	Zone string
}

// ParseStamp parses the "{YYYYY}-{MM}-{DD}--{HHMM}-{zone}" form.
func ParseStamp(raw string) (Stamp, error) {
	match := stampPattern.FindStringSubmatch(raw)
	if match == nil {
		return Stamp{}, fmt.Errorf("stamp %q does not match YYYYY-MM-DD--HHMM-zone", raw)
	}

	// The pattern guarantees pure digits, so strconv cannot fail.
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	day, _ := strconv.Atoi(match[3])
	hhmm, _ := strconv.Atoi(match[4])

	stamp := Stamp{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hhmm / 100,
		Minute: hhmm % 100,
		Zone:   match[5],
	}
	if err := stamp.validate(); err != nil {
		return Stamp{}, fmt.Errorf("stamp %q: %w", raw, err)
	}
	return stamp, nil
}

// FromTime builds a Stamp from a wall-clock time. The zone label is
// the time's zone abbreviation lowercased; abbreviations that are not
// 3-4 ASCII letters (numeric offsets like "+0530") fall back to "utc"
// with the time converted accordingly.
func FromTime(t time.Time) Stamp {
	zone := strings.ToLower(t.Format("MST"))
	if !zonePatternOK(zone) {
		t = t.UTC()
		zone = "utc"
	}
	return Stamp{
		Year:   t.Year() + holoceneOffset,
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Zone:   zone,
	}
}

// String formats the stamp in its canonical filename form.
func (s Stamp) String() string {
	return fmt.Sprintf("%05d-%02d-%02d--%02d%02d-%s", s.Year, s.Month, s.Day, s.Hour, s.Minute, s.Zone)
}

// Key reduces the stamp to an integer YYYYYMMDDHHMM. Keys order the
// same way the canonical string form sorts, so comparing keys and
// comparing filenames agree.
func (s Stamp) Key() int64 {
	return int64(s.Year)*1e8 + int64(s.Month)*1e6 + int64(s.Day)*1e4 + int64(s.Hour)*1e2 + int64(s.Minute)
}

// Before reports whether s is strictly earlier than other.
func (s Stamp) Before(other Stamp) bool { return s.Key() < other.Key() }

func (s Stamp) validate() error {
	switch {
	case s.Year < holoceneOffset || s.Year > 99999:
		return fmt.Errorf("year %d out of range", s.Year)
	case s.Month < 1 || s.Month > 12:
		return fmt.Errorf("month %d out of range", s.Month)
	case s.Day < 1 || s.Day > 31:
		return fmt.Errorf("day %d out of range", s.Day)
	case s.Hour > 23:
		return fmt.Errorf("hour %d out of range", s.Hour)
	case s.Minute > 59:
		return fmt.Errorf("minute %d out of range", s.Minute)
	case !zonePatternOK(s.Zone):
		return fmt.Errorf("zone %q is not 3-4 lowercase letters", s.Zone)
	}
	return nil
}

func zonePatternOK(zone string) bool {
	if len(zone) < 3 || len(zone) > 4 {
		return false
	}
	for i := 0; i < len(zone); i++ {
		if zone[i] < 'a' || zone[i] > 'z' {
			return false
		}
	}
	return true
}
