package services

import (
	"strings"

	"github.com/swiftship/courier-backend/internal/models"
)

// NormalizeName uppercases, trims, collapses internal whitespace and strips
// punctuation so printed and typed names compare on equal footing.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			b.WriteRune(' ')
		default:
			// punctuation and diacritic leftovers are dropped
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CompareNames matches a name extracted from an identity document against the
// submitter-provided first and last name. Printed names often carry middle
// names or transliteration variants, so the verdict is graduated rather than
// boolean: callers apply a confidence threshold on top of the match flag.
func CompareNames(extractedName, providedFirst, providedLast string) models.NameMatchResult {
	result := models.NameMatchResult{
		ExtractedName:     extractedName,
		ProvidedFirstName: providedFirst,
		ProvidedLastName:  providedLast,
	}

	extracted := NormalizeName(extractedName)
	first := NormalizeName(providedFirst)
	last := NormalizeName(providedLast)

	if extracted == "" || first == "" || last == "" {
		result.Reason = "missing information for comparison"
		return result
	}

	tokens := strings.Fields(extracted)

	if len(tokens) >= 2 && tokens[0] == first && tokens[1] == last {
		result.Match = true
		result.Confidence = 0.95
		result.Reason = "first and last name match"
		return result
	}

	// Full-string equality catches multi-word given or family names that
	// the token checks above cannot line up.
	if extracted == first+" "+last {
		result.Match = true
		result.Confidence = 1.0
		result.Reason = "exact match"
		return result
	}

	firstMatches := tokens[0] == first
	lastMatches := tokens[len(tokens)-1] == last

	if firstMatches != lastMatches {
		result.Confidence = 0.65
		result.Reason = "partial match, flagged for manual review"
		return result
	}

	if firstMatches {
		// Document lists middle names between first and last.
		for _, token := range tokens {
			if token == last {
				result.Match = true
				result.Confidence = 0.85
				result.Reason = "first name matches, last name found among document names"
				return result
			}
		}
	}

	result.Confidence = 0.2
	result.Reason = "names do not match"
	return result
}
