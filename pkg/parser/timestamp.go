// Package parser turns raw log file lines into timestamped entries:
// timestamp recognition, component naming, and multi-line segmentation.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timePattern matches a time-of-day token like "14:45:36.507" anywhere in a
// line. Hours are 1-2 digits (0-23), minutes and seconds 00-59, milliseconds
// exactly three digits. The surrounding groups reject tokens embedded in
// longer digit runs, so "99:61:61.000" never half-matches.
var timePattern = regexp.MustCompile(
	`(?:^|[^0-9])((?:[01]?[0-9]|2[0-3]):([0-5][0-9]):([0-5][0-9])\.([0-9]{3}))(?:[^0-9]|$)`)

// Match is the result of recognizing a timestamp within a line.
type Match struct {
	// Time is the absolute instant: the effective date combined with the
	// recognized time-of-day, in UTC. Millisecond precision is preserved.
	Time time.Time

	// Token is the matched timestamp substring.
	Token string

	// Remainder is the line text after the matched span, with leading
	// whitespace trimmed. May be empty.
	Remainder string
}

// TimestampRecognizer finds embedded HH:MM:SS.mmm timestamps and anchors them
// to a caller-supplied calendar date.
type TimestampRecognizer struct {
	date time.Time // midnight UTC of the effective date
}

// NewTimestampRecognizer creates a recognizer that composes recognized
// times-of-day with the given date. The date's time-of-day portion is ignored.
func NewTimestampRecognizer(date time.Time) *TimestampRecognizer {
	y, m, d := date.UTC().Date()
	return &TimestampRecognizer{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Recognize scans line for the first valid timestamp token.
// The second return value is false when no token is found; that is the normal
// signal for a continuation line, not an error. Timestamp-shaped tokens with
// out-of-range fields do not match.
func (r *TimestampRecognizer) Recognize(line string) (Match, bool) {
	loc := timePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}

	// Group 1 is the full token; groups 2-4 are minute, second, millisecond.
	token := line[loc[2]:loc[3]]
	hour, _ := strconv.Atoi(token[:strings.IndexByte(token, ':')])
	minute, _ := strconv.Atoi(line[loc[4]:loc[5]])
	second, _ := strconv.Atoi(line[loc[6]:loc[7]])
	milli, _ := strconv.Atoi(line[loc[8]:loc[9]])

	at := r.date.Add(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(second)*time.Second +
		time.Duration(milli)*time.Millisecond)

	return Match{
		Time:      at,
		Token:     token,
		Remainder: strings.TrimLeft(line[loc[3]:], " \t"),
	}, true
}
