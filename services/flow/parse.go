// File: services/flow/parse.go
package flow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"innkeeper/utils"
)

// Slot parsers for guest answers. Everything runs over normalized (lowercased,
// diacritic-folded) text, so "štiri noči" and "stiri noci" parse the same.

var numberWords = map[string]int{
	"en": 1, "ena": 1, "eno": 1, "enega": 1,
	"dva": 2, "dve": 2, "dveh": 2,
	"tri": 3, "trije": 3, "treh": 3,
	"stiri": 4, "stirje": 4, "stirih": 4,
	"pet": 5, "sest": 6, "sedem": 7, "osem": 8, "devet": 9, "deset": 10,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// monthPrefixes map folded Slovene (and English) month stems to months; the
// stem form also covers genitives like "avgusta" ("15. avgusta").
var monthPrefixes = []struct {
	stem  string
	month time.Month
}{
	{"januar", time.January}, {"februar", time.February}, {"marec", time.March},
	{"marca", time.March}, {"april", time.April}, {"maj", time.May},
	{"junij", time.June}, {"junija", time.June}, {"julij", time.July},
	{"julija", time.July}, {"avgust", time.August}, {"september", time.September},
	{"oktober", time.October}, {"oktobra", time.October}, {"november", time.November},
	{"december", time.December},
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"may", time.May}, {"june", time.June}, {"july", time.July},
	{"august", time.August}, {"october", time.October},
}

var (
	isoDateRe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	dottedDateRe = regexp.MustCompile(`\b(\d{1,2})\.\s*(\d{1,2})\.(?:\s*(\d{4}))?`)
	dayMonthRe   = regexp.MustCompile(`\b(\d{1,2})\.?\s+([a-z]+)(?:\s+(\d{4}))?`)
	clockRe      = regexp.MustCompile(`\b(\d{1,2})[:.h](\d{2})\b`)
	hourOnlyRe   = regexp.MustCompile(`\bob\s+(\d{1,2})h?\b|\b(\d{1,2})h\b`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`\+?\d[\d\s/\-().]{6,}\d`)
)

func parseNumberToken(t string) (int, bool) {
	if n, err := strconv.Atoi(t); err == nil {
		return n, true
	}
	n, ok := numberWords[t]
	return n, ok
}

func monthFromWord(word string) (time.Month, bool) {
	for _, m := range monthPrefixes {
		if strings.HasPrefix(word, m.stem) {
			return m.month, true
		}
	}
	return 0, false
}

// buildDate validates day/month and resolves a missing year to the next
// occurrence of that calendar date.
func buildDate(day, month, year int, now time.Time) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	explicitYear := year != 0
	if !explicitYear {
		year = now.Year()
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !explicitYear && d.Before(today) {
		d = time.Date(year+1, time.Month(month), day, 0, 0, 0, 0, now.Location())
		if d.Day() != day {
			return time.Time{}, false
		}
	}
	return d, true
}

// ParseDate extracts a calendar date from a guest message. Supported shapes:
// "danes", "jutri", "2026-08-15", "15.8.2026", "15. 8.", "15. avgusta 2026".
func ParseDate(message string, now time.Time) (time.Time, bool) {
	norm := utils.NormalizeText(message)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(norm, "pojutrisnjem"):
		return today.AddDate(0, 0, 2), true
	case strings.Contains(norm, "danes") || strings.Contains(norm, "today"):
		return today, true
	case strings.Contains(norm, "jutri") || strings.Contains(norm, "tomorrow"):
		return today.AddDate(0, 0, 1), true
	}

	if m := isoDateRe.FindStringSubmatch(norm); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return buildDate(day, month, year, now)
	}

	if m := dottedDateRe.FindStringSubmatch(norm); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := 0
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		return buildDate(day, month, year, now)
	}

	if m := dayMonthRe.FindStringSubmatch(norm); m != nil {
		if month, ok := monthFromWord(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			year := 0
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			return buildDate(day, int(month), year, now)
		}
	}

	return time.Time{}, false
}

// ParseTime extracts an HH:MM arrival time ("ob 19h", "19:30", "12.30").
func ParseTime(message string) (string, bool) {
	norm := utils.NormalizeText(message)
	if m := clockRe.FindStringSubmatch(norm); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}
	if m := hourOnlyRe.FindStringSubmatch(norm); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		hour, _ := strconv.Atoi(raw)
		if hour <= 23 {
			return fmt.Sprintf("%02d:00", hour), true
		}
	}
	// A bare small number at a time step means the hour.
	tokens := utils.Tokenize(message)
	if len(tokens) == 1 {
		if hour, ok := parseNumberToken(tokens[0]); ok && hour >= 0 && hour <= 23 {
			return fmt.Sprintf("%02d:00", hour), true
		}
	}
	return "", false
}

// ParseGuests extracts the party split from answers like "2 odrasla in 2
// otroka", "za stiri osebe" or a bare "4" (all adults).
func ParseGuests(message string) (adults, children int, ok bool) {
	tokens := utils.Tokenize(message)
	lastBare := -1
	for i, t := range tokens {
		n, isNum := parseNumberToken(t)
		if !isNum || n < 0 {
			continue
		}
		if i+1 < len(tokens) {
			next := tokens[i+1]
			switch {
			case strings.HasPrefix(next, "odrasl") || strings.HasPrefix(next, "adult"):
				adults = n
				continue
			case strings.HasPrefix(next, "otrok") || strings.HasPrefix(next, "otroc") ||
				strings.HasPrefix(next, "child") || strings.HasPrefix(next, "kid"):
				children = n
				continue
			case strings.HasPrefix(next, "oseb") || strings.HasPrefix(next, "ljud") ||
				strings.HasPrefix(next, "people") || strings.HasPrefix(next, "person") ||
				strings.HasPrefix(next, "gost"):
				adults = n
				continue
			}
		}
		lastBare = n
	}
	if adults == 0 && children == 0 && lastBare > 0 {
		adults = lastBare
	}
	return adults, children, adults+children > 0
}

// ParseAges collects child ages (0-17) from a message.
func ParseAges(message string) []int {
	var ages []int
	for _, t := range utils.Tokenize(message) {
		if n, ok := parseNumberToken(t); ok && n >= 0 && n <= 17 {
			ages = append(ages, n)
		}
	}
	return ages
}

// ParseNights extracts a stay length: "3 noci", "teden dni", "vikend", "5".
func ParseNights(message string) (int, bool) {
	tokens := utils.Tokenize(message)
	for i, t := range tokens {
		if strings.HasPrefix(t, "teden") || t == "week" {
			return 7, true
		}
		if strings.HasPrefix(t, "vikend") || t == "weekend" {
			return 2, true
		}
		if n, ok := parseNumberToken(t); ok && n > 0 {
			if i+1 < len(tokens) && (strings.HasPrefix(tokens[i+1], "noc") || strings.HasPrefix(tokens[i+1], "night")) {
				return n, true
			}
			if len(tokens) == 1 {
				return n, true
			}
		}
	}
	// "3 nočitve" style where the bare number sits anywhere.
	for _, t := range tokens {
		if n, ok := parseNumberToken(t); ok && n > 0 && n <= 31 {
			return n, true
		}
	}
	return 0, false
}

// ParseEmail pulls the first email address out of the raw message.
func ParseEmail(message string) (string, bool) {
	if m := emailRe.FindString(message); m != "" {
		return strings.ToLower(m), true
	}
	return "", false
}

// ParsePhone pulls a phone number with at least seven digits; formatting
// characters are kept as typed.
func ParsePhone(message string) (string, bool) {
	for _, m := range phoneRe.FindAllString(message, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return strings.TrimSpace(m), true
		}
	}
	return "", false
}

var affirmTokens = map[string]bool{
	"da": true, "ja": true, "seveda": true, "velja": true, "prav": true,
	"ok": true, "okej": true, "lahko": true, "potrjujem": true, "potrdim": true,
	"yes": true, "yep": true, "sure": true,
}

var denyTokens = map[string]bool{
	"ne": true, "no": true, "nope": true, "nocem": true, "brez": true,
}

// ParseYesNo reads a short yes/no answer; ok is false when the message is
// neither.
func ParseYesNo(message string) (yes, ok bool) {
	tokens := utils.Tokenize(message)
	if len(tokens) == 0 || len(tokens) > 4 {
		return false, false
	}
	for _, t := range tokens {
		if denyTokens[t] {
			return false, true
		}
	}
	for _, t := range tokens {
		if affirmTokens[t] {
			return true, true
		}
	}
	return false, false
}

// IsSkip reports a "nothing / skip this" answer at an optional step.
func IsSkip(message string) bool {
	norm := utils.NormalizeText(message)
	switch norm {
	case "ne", "ne hvala", "nic", "brez", "nimam", "preskoci", "no", "nothing", "/", "-":
		return true
	}
	return false
}
