// Package clean normalises raw item fields into MARC subfield payloads.
// Every function here is pure.
package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// 2020, 2020-03, 2020-03-05, 2020/3/5, 2020-03-05T10:00:00Z, 2020-03-05 10:00.
	// "2020 Mar 5" is left to the text scanner.
	isoDate = regexp.MustCompile(`^(\d{4})(?:[-/.](\d{1,2})(?:[-/.](\d{1,2}))?)?(?:$|T|\s+\d{1,2}:)`)
	// 3/5/2020, 15.03.2020
	numericDate = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})$`)
	dateToken   = regexp.MustCompile(`[A-Za-z]+|\d+`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Date formats a free-text date as YYYY, YYYY-MM or YYYY-MM-DD. It returns
// false when no year can be found; a partial date is never guessed.
func Date(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	var year, month, day int
	if m := isoDate.FindStringSubmatch(s); m != nil {
		year, month, day = atoi(m[1]), atoi(m[2]), atoi(m[3])
	} else if m := numericDate.FindStringSubmatch(s); m != nil {
		first, second := atoi(m[1]), atoi(m[2])
		year = atoi(m[3])
		// month first unless that cannot be a month
		if first > 12 {
			month, day = second, first
		} else {
			month, day = first, second
		}
	} else {
		year, month, day = textDate(s)
	}

	if year == 0 {
		return "", false
	}
	return formatDate(year, month, day), true
}

// textDate scans "5 March 2020", "March 5th, 2020", "Mar. 2020" and similar.
func textDate(s string) (year, month, day int) {
	for _, tok := range dateToken.FindAllString(s, -1) {
		if tok[0] >= '0' && tok[0] <= '9' {
			switch {
			case len(tok) == 4 && year == 0:
				year = atoi(tok)
			case len(tok) <= 2 && day == 0:
				day = atoi(tok)
			}
			continue
		}
		if month == 0 {
			month = monthNumber(tok)
		}
	}
	if month == 0 {
		day = 0
	}
	return year, month, day
}

func monthNumber(tok string) int {
	tok = strings.ToLower(tok)
	if len(tok) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, tok) {
			return i + 1
		}
	}
	return 0
}

func formatDate(year, month, day int) string {
	out := fmt.Sprintf("%04d", year)
	if month < 1 || month > 12 {
		return out
	}
	out += fmt.Sprintf("-%02d", month)
	// drop days the month does not have, such as February 31
	if day < 1 || time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Day() != day {
		return out
	}
	return out + fmt.Sprintf("-%02d", day)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
