package parser

import (
	"errors"
	"regexp"
	"strings"
)

// numberPrefix matches ordering prefixes like "01 - " or "2-" at the start of
// a filename stem.
var numberPrefix = regexp.MustCompile(`^[0-9]+\s*-\s*`)

// ComponentName derives the logical service name from a log filename
// (no directory part). It strips an optional numeric ordering prefix and the
// ".log" extension, case-insensitively:
//
//	"01 - reaper.log" -> "reaper"
//	"service.log"     -> "service"
//	"log"             -> "log"
//
// The result is never empty: if stripping the prefix leaves nothing, the
// unstripped stem is returned. An empty filename is a programming error.
func ComponentName(filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is empty")
	}

	stem := filename
	if len(stem) > 4 && strings.EqualFold(stem[len(stem)-4:], ".log") {
		stem = stem[:len(stem)-4]
	}

	name := strings.TrimSpace(numberPrefix.ReplaceAllString(stem, ""))
	if name == "" {
		name = strings.TrimSpace(stem)
	}
	if name == "" {
		name = filename
	}
	return name, nil
}
