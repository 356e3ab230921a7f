package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Marker identifies what opened a section.
type Marker int

const (
	MarkerNone    Marker = iota // preamble before any heading
	MarkerHeading               // plain "#" heading
	MarkerPhase                 // "Phase N"
	MarkerWeek                  // "Week N"
	MarkerDay                   // "Day N" or "Day N-M"
	MarkerDaily                 // "Daily Tasks"
	MarkerGoals                 // "Goals:", "Milestones:", "Success Metrics:", "By the end of this week:"
)

// Section is a contiguous span of document text with the phase/week context
// that was current when it was encountered.
type Section struct {
	Index        int
	Marker       Marker
	Header       string // text of the line that opened the section
	Heading      string // nearest "#" heading text
	HeadingLevel int
	Body         string
	Phase        int
	Week         int
	DayRange     string
}

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	contextMark = regexp.MustCompile(`(?i)^(?:\*\*|__)?\s*(phase|week|day)\s+(\d+)(?:\s*[-–]\s*(\d+))?\b`)
	dailyMark   = regexp.MustCompile(`(?i)^(?:\*\*|__)?\s*daily\s+tasks?\b`)
	goalsMark   = regexp.MustCompile(`(?i)^(?:\*\*|__)?\s*(?:(?:goals|milestones|success metrics)\s*:?|by the end of (?:this|the)\s+(?:week|month|phase)[^:]*:)\s*(?:\*\*|__)?\s*:?\s*$`)
)

// goalsLabel catches labels that follow other words, as in "Week 1 Goals:".
var (
	goalsLabel = regexp.MustCompile(`(?i)\b(?:goals|milestones|success metrics)\s*[*_]*\s*:\s*[*_]*\s*$`)
	bulletLine = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s`)
)

// IsGoalsLine reports whether line introduces a list of goals or milestones.
func IsGoalsLine(line string) bool {
	if goalsMark.MatchString(line) {
		return true
	}
	return !bulletLine.MatchString(line) && goalsLabel.MatchString(line)
}

// Normalize strips a byte order mark and converts line endings to "\n".
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

type segmenter struct {
	sections     []Section
	cur          *Section
	body         []string
	heading      string
	headingLevel int
	phase        int
	week         int
	dayRange     string
}

// Segment splits text into ordered sections at heading boundaries and at
// Phase/Week/Day/Daily/Goals marker lines. Phase and week carry over from
// section to section until a new marker overwrites them; both default to 1.
func Segment(text string) []Section {
	s := &segmenter{phase: 1, week: 1}

	for _, line := range strings.Split(Normalize(text), "\n") {
		trimmed := strings.TrimSpace(line)

		if m := headingLine.FindStringSubmatch(trimmed); m != nil {
			s.heading = m[2]
			s.headingLevel = len(m[1])
			marker := s.applyContext(m[2])
			if marker == MarkerNone {
				marker = MarkerHeading
			}
			s.open(marker, m[2])
			continue
		}

		if marker := s.applyContext(trimmed); marker != MarkerNone {
			s.open(marker, trimmed)
			continue
		}

		if s.cur == nil {
			if trimmed == "" {
				continue
			}
			s.open(MarkerNone, "")
		}
		s.body = append(s.body, line)
	}
	s.flush()

	return s.sections
}

// applyContext updates the running context from a marker line and reports
// which marker it was, or MarkerNone. A phase or week marker on a goals line
// ("Week 2 Goals:") still moves the context but opens a goals section.
// Phase and week numbers below 1 are raised to 1.
func (s *segmenter) applyContext(line string) Marker {
	marker := MarkerNone
	if m := contextMark.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		switch strings.ToLower(m[1]) {
		case "phase":
			s.phase = max(n, 1)
			s.dayRange = ""
			marker = MarkerPhase
		case "week":
			s.week = max(n, 1)
			s.dayRange = ""
			marker = MarkerWeek
		default:
			s.dayRange = "Day " + m[2]
			if m[3] != "" {
				s.dayRange += "-" + m[3]
			}
			marker = MarkerDay
		}
	}
	if marker != MarkerDay && IsGoalsLine(line) {
		return MarkerGoals
	}
	if marker != MarkerNone {
		return marker
	}
	if dailyMark.MatchString(line) {
		return MarkerDaily
	}
	return MarkerNone
}

func (s *segmenter) open(marker Marker, header string) {
	s.flush()
	s.cur = &Section{
		Marker:       marker,
		Header:       header,
		Heading:      s.heading,
		HeadingLevel: s.headingLevel,
		Phase:        s.phase,
		Week:         s.week,
		DayRange:     s.dayRange,
	}
}

func (s *segmenter) flush() {
	if s.cur == nil {
		return
	}
	s.cur.Body = strings.Trim(strings.Join(s.body, "\n"), "\n")
	if s.cur.Header != "" || strings.TrimSpace(s.cur.Body) != "" {
		s.cur.Index = len(s.sections)
		s.sections = append(s.sections, *s.cur)
	}
	s.cur = nil
	s.body = nil
}
