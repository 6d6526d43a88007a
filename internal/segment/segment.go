// Package segment partitions normalized legal text into an ordered sequence
// of candidate clauses. Splitting is deterministic: the same input always
// yields the same clause sequence.
package segment

import (
	"regexp"
	"strings"
	"unicode"

	"lexclause/internal/clause"
)

// enumMarker matches structural sub-section markers at the start of a line:
// "(a)", "(iv)", "(12)", "1.", "2.1.", "3)", "a.", "b)".
var enumMarker = regexp.MustCompile(`^(\((?:[0-9]{1,3}|[a-z]{1,3}|[ivxl]{1,4})\)|[0-9]{1,3}(?:\.[0-9]{1,3})*[.)]|[a-z][.)])\s`)

// abbreviations that a period does not terminate. Lowercased for lookup.
var abbreviations = map[string]struct{}{
	"inc": {}, "sec": {}, "no": {}, "art": {}, "co": {}, "corp": {},
	"ltd": {}, "llc": {}, "vs": {}, "v": {}, "etc": {}, "mr": {},
	"mrs": {}, "ms": {}, "dr": {}, "jr": {}, "sr": {}, "st": {},
	"para": {}, "cl": {}, "ex": {}, "app": {}, "attn": {}, "dept": {},
}

// Split partitions document text into ordered clauses. Boundaries are
// sentence-ending punctuation and semicolons at the top nesting level,
// plus paragraph breaks and numbered/lettered sub-section markers.
// Periods inside quoted strings, parenthetical cross-references,
// abbreviations, and section numbers like "2.1" never split.
//
// Text with no detectable boundary yields a single clause; empty or
// whitespace-only text yields nil.
func Split(text string) []clause.Clause {
	normalized := normalize(text)
	if normalized == "" {
		return nil
	}

	var clauses []clause.Clause
	for _, block := range strings.Split(normalized, "\n\n") {
		for _, seg := range splitBlock(block) {
			compact := strings.Join(strings.Fields(seg), " ")
			if compact == "" {
				continue
			}
			clauses = append(clauses, clause.Clause{
				Text:     compact,
				Position: len(clauses),
			})
		}
	}

	return clauses
}

// normalize converts line endings, strips control characters, and collapses
// runs of three or more newlines into a single paragraph break.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(text)
}

// splitBlock scans one paragraph rune by rune and cuts it at clause
// boundaries, tracking quote and bracket nesting so enclosed punctuation
// is never treated as a boundary.
func splitBlock(block string) []string {
	runes := []rune(block)
	var segments []string
	var depth int
	var inQuote bool
	start := 0

	flush := func(end, next int) {
		segments = append(segments, string(runes[start:end]))
		start = next
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch r {
		case '"':
			inQuote = !inQuote
			continue
		case '(', '[':
			if !inQuote {
				depth++
			}
			continue
		case ')', ']':
			if !inQuote && depth > 0 {
				depth--
			}
			continue
		}

		if inQuote || depth > 0 {
			continue
		}

		switch {
		case r == ';':
			// Separator between independent clauses; dropped from output.
			flush(i, i+1)

		case r == '.' || r == '!' || r == '?':
			if r == '.' && suppressPeriod(runes, i, start) {
				continue
			}
			end := i + 1
			// Keep trailing closing quotes with the sentence.
			for end < len(runes) && (runes[end] == '"' || runes[end] == '\'') {
				end++
			}
			if end < len(runes) && !unicode.IsSpace(runes[end]) {
				continue
			}
			flush(end, end)
			i = end - 1

		case r == '\n':
			// A newline followed by a sub-section marker is a structural
			// boundary even without terminal punctuation.
			rest := strings.TrimLeft(string(runes[i+1:]), " \t")
			if enumMarker.MatchString(rest) {
				flush(i, i+1)
			}
		}
	}

	if start < len(runes) {
		segments = append(segments, string(runes[start:]))
	}

	return segments
}

// suppressPeriod reports whether the period at index i is part of a number,
// an enumeration marker, an initial, or a known abbreviation rather than
// a sentence terminator.
func suppressPeriod(runes []rune, i, segStart int) bool {
	// Decimal or section number: "2.1", "10.25".
	if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
		return true
	}

	// Word immediately preceding the period.
	wordStart := i
	for wordStart > segStart {
		prev := runes[wordStart-1]
		if unicode.IsLetter(prev) || unicode.IsDigit(prev) {
			wordStart--
			continue
		}
		break
	}
	word := string(runes[wordStart:i])
	if word == "" {
		return false
	}

	// Enumeration marker at the start of a segment: "1. Definitions".
	if isNumeric(word) && atSegmentStart(runes, wordStart, segStart) {
		return true
	}

	wr := []rune(word)
	// Single-letter initial ("J." in "J. Smith") or a letter in a dotted
	// sequence ("U.S.", "e.g.").
	if len(wr) == 1 {
		if unicode.IsUpper(wr[0]) {
			return true
		}
		if wordStart > segStart && runes[wordStart-1] == '.' {
			return true
		}
	}

	_, ok := abbreviations[strings.ToLower(word)]
	return ok
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// atSegmentStart reports whether only whitespace precedes position pos
// since the segment began or since the last newline.
func atSegmentStart(runes []rune, pos, segStart int) bool {
	for j := pos - 1; j >= segStart; j-- {
		if runes[j] == '\n' {
			return true
		}
		if !unicode.IsSpace(runes[j]) {
			return false
		}
	}
	return true
}
