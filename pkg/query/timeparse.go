package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// instantLayouts are the accepted textual target forms, all interpreted as UTC.
var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseInstant parses a query target: either a UNIX epoch-seconds integer
// ("1697395536") or an ISO-style datetime ("2023-10-15T14:45:36", with an
// optional trailing Z, or with a space separator). Textual forms are UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(epoch, 0).UTC(), nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf(
		"unable to parse timestamp %q: expected UNIX seconds or ISO format (YYYY-MM-DDTHH:MM:SS)", s)
}
