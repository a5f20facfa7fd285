// Package timeparse resolves the dates accepted by the history filters.
//
// Three forms are tried in order:
//  1. a calendar date, 2006-01-02
//  2. a compact offset in days, weeks, months or years: 7d, -2w, +1m
//  3. English phrases such as "yesterday" or "3 days ago"
//
// Every form resolves to a whole UTC day.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DateLayout is the calendar date form.
const DateLayout = "2006-01-02"

// ErrUnrecognized is returned when no form matches.
var ErrUnrecognized = errors.New("unrecognized date")

var offsetRe = regexp.MustCompile(`^([+-]?)(\d+)([dwmy])$`)

var phrases = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Day returns midnight UTC of the day s names, relative to now.
func Day(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnrecognized
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, ok := parseOffset(s, now); ok {
		return startOfDay(t), nil
	}

	r, err := phrases.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, err)
	}
	// A phrase buried in other words is not a date.
	if r == nil || len(strings.TrimSpace(r.Text)) != len(s) {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrUnrecognized)
	}
	return startOfDay(r.Time), nil
}

// EndOfDay returns the last instant of the day s names.
func EndOfDay(s string, now time.Time) (time.Time, error) {
	t, err := Day(s, now)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24*time.Hour - time.Nanosecond), nil
}

// parseOffset reads a compact offset. Unsigned offsets count backwards, since
// the history only holds past runs.
func parseOffset(s string, now time.Time) (time.Time, bool) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	if m[1] != "+" {
		n = -n
	}

	switch m[3] {
	case "d":
		return now.AddDate(0, 0, n), true
	case "w":
		return now.AddDate(0, 0, 7*n), true
	case "m":
		return now.AddDate(0, n, 0), true
	default:
		return now.AddDate(n, 0, 0), true
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
