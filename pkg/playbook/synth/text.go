package synth

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTimeEstimate is used when no "(N hours|minutes)" annotation is present.
const DefaultTimeEstimate = 60

var (
	timeAnnotation = regexp.MustCompile(`(?i)\(\s*(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?)\s*\)`)
	sentenceEnd    = regexp.MustCompile(`[.!?](?:\s|$)`)
	emphasis       = regexp.MustCompile(`\*\*|__|` + "`")
	spaces         = regexp.MustCompile(`\s+`)
)

// TimeEstimate parses a parenthetical time annotation into minutes. ok is
// false when the default was used.
func TimeEstimate(text string) (minutes int, ok bool) {
	m := timeAnnotation.FindStringSubmatch(text)
	if m == nil {
		return DefaultTimeEstimate, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return DefaultTimeEstimate, false
	}
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		n *= 60
	}
	minutes = int(math.Round(n))
	if minutes < 1 {
		minutes = 1
	}
	return minutes, true
}

// StripTimeAnnotation removes parenthetical time annotations from text.
func StripTimeAnnotation(text string) string {
	return Clean(timeAnnotation.ReplaceAllString(text, ""))
}

// Clean removes markdown emphasis and collapses whitespace.
func Clean(text string) string {
	text = emphasis.ReplaceAllString(text, "")
	return strings.TrimSpace(spaces.ReplaceAllString(text, " "))
}

// FirstSentence returns text up to, but not including, the first sentence
// terminator.
func FirstSentence(text string) string {
	if loc := sentenceEnd.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]])
	}
	return strings.TrimSpace(text)
}

// Truncate shortens text to at most max runes, ending in "..." when cut.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	if max <= 3 {
		return string(r[:max])
	}
	return strings.TrimSpace(string(r[:max-3])) + "..."
}

// Title derives a task title: time annotation stripped, first sentence,
// at most max runes.
func Title(text string, max int) string {
	return Truncate(FirstSentence(StripTimeAnnotation(text)), max)
}

// NormalizeCount turns "1,000", "1.5k" or "2M" into a plain integer string.
// Text that is not a count is returned trimmed.
func NormalizeCount(s string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	s = strings.ReplaceAll(s, " ", "")
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		mult, s = 1e3, strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult, s = 1e6, strings.TrimSuffix(s, "m")
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatInt(int64(math.Round(n*mult)), 10)
}
