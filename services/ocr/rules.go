package ocr

import (
	"regexp"
	"strings"
)

// Keyword sets used for line scanning. Matching is case-insensitive
// substring containment; false positives are an accepted property of the
// heuristic.
var (
	dobKeywords    = []string{"DOB", "DATE OF BIRTH", "BIRTH", "BIRTHDATE", "D.O.B", "BORN"}
	expiryKeywords = []string{"EXP", "EXPIR", "VALID", "UNTIL"}
	nameKeywords   = []string{"NAME", "LAST NAME", "FIRST NAME", "SURNAME", "GIVEN"}
	numberKeywords = []string{"LICENSE", "LIC", "ID", "NUMBER", "NO", "DL"}
	addrKeywords   = []string{"ADDRESS", "ADDR", "STREET", "RESIDENCE"}
)

var (
	dateRe   = regexp.MustCompile(`\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}`)
	tokenRe  = regexp.MustCompile(`\b[A-Za-z0-9]{5,20}\b`)
	postalRe = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	stateRe  = regexp.MustCompile(`\b[A-Z]{2}\b`)
)

// SplitLines tokenizes raw OCR output into trimmed, non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func matchesAny(line string, keywords []string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// dateNear returns the first date pattern on the keyword line itself or
// the line after it.
func dateNear(lines []string, i int) (string, bool) {
	if m := dateRe.FindString(lines[i]); m != "" {
		return m, true
	}
	if i+1 < len(lines) {
		if m := dateRe.FindString(lines[i+1]); m != "" {
			return m, true
		}
	}
	return "", false
}

// DateOfBirth finds the first date near a birth-related keyword.
func DateOfBirth(lines []string) (string, bool) {
	for i, line := range lines {
		if !matchesAny(line, dobKeywords) {
			continue
		}
		if date, ok := dateNear(lines, i); ok {
			return date, true
		}
	}
	return "", false
}

// ExpiryDate finds the first date near an expiry-related keyword.
func ExpiryDate(lines []string) (string, bool) {
	for i, line := range lines {
		if !matchesAny(line, expiryKeywords) {
			continue
		}
		if date, ok := dateNear(lines, i); ok {
			return date, true
		}
	}
	return "", false
}

// Name inspects the line after a name keyword. "LAST, FIRST" splits on
// the comma; otherwise the first whitespace token is the first name and
// the final token the last name.
func Name(lines []string) (first, last string, ok bool) {
	for i, line := range lines {
		if !matchesAny(line, nameKeywords) || i+1 >= len(lines) {
			continue
		}
		candidate := strings.TrimSpace(lines[i+1])
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, ",") {
			parts := strings.SplitN(candidate, ",", 2)
			last = strings.TrimSpace(parts[0])
			first = strings.TrimSpace(parts[1])
		} else {
			tokens := strings.Fields(candidate)
			if len(tokens) == 0 {
				continue
			}
			first = tokens[0]
			last = tokens[len(tokens)-1]
		}
		if first != "" || last != "" {
			return first, last, true
		}
	}
	return "", "", false
}

// DocumentNumber finds an alphanumeric token of length 5-20 on the
// keyword line or the one after it.
func DocumentNumber(lines []string) (string, bool) {
	for i, line := range lines {
		if !matchesAny(line, numberKeywords) {
			continue
		}
		if m := tokenRe.FindString(line); m != "" {
			return m, true
		}
		if i+1 < len(lines) {
			if m := tokenRe.FindString(lines[i+1]); m != "" {
				return m, true
			}
		}
	}
	return "", false
}

// AddressFields is the partial address extracted from up to three lines
// following an address keyword.
type AddressFields struct {
	Street     string
	State      string
	PostalCode string
}

// Address takes up to three lines after an address keyword: the first
// becomes the street; the rest are scanned for a postal code and a bare
// two-letter state code.
func Address(lines []string) (AddressFields, bool) {
	for i, line := range lines {
		if !matchesAny(line, addrKeywords) || i+1 >= len(lines) {
			continue
		}

		end := i + 4
		if end > len(lines) {
			end = len(lines)
		}
		block := lines[i+1 : end]

		fields := AddressFields{Street: block[0]}
		rest := strings.Join(block[1:], " ")
		fields.PostalCode = postalRe.FindString(rest)
		fields.State = stateRe.FindString(rest)
		return fields, true
	}
	return AddressFields{}, false
}
