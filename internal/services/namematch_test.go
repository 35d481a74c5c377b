package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already normalized", input: "JOHN DOE", expected: "JOHN DOE"},
		{name: "lowercase", input: "john doe", expected: "JOHN DOE"},
		{name: "surrounding whitespace", input: "  john doe \n", expected: "JOHN DOE"},
		{name: "internal whitespace collapsed", input: "JOHN   \t DOE", expected: "JOHN DOE"},
		{name: "punctuation stripped", input: "O'BRIEN, JOHN.", expected: "OBRIEN JOHN"},
		{name: "empty", input: "", expected: ""},
		{name: "only punctuation", input: "--..--", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.input))
		})
	}
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		name       string
		extracted  string
		first      string
		last       string
		match      bool
		confidence float64
	}{
		{
			name:      "exact match",
			extracted: "JOHN DOE", first: "JOHN", last: "DOE",
			match: true, confidence: 0.95,
		},
		{
			name:      "exact match different case",
			extracted: "John Doe", first: "john", last: "doe",
			match: true, confidence: 0.95,
		},
		{
			name:      "multi-word first name exact",
			extracted: "MARY JANE DOE", first: "MARY JANE", last: "DOE",
			match: true, confidence: 1.0,
		},
		{
			name:      "middle name on document",
			extracted: "AHMED MOHAMMED ALI", first: "AHMED", last: "ALI",
			match: true, confidence: 0.85,
		},
		{
			name:      "first matches only",
			extracted: "JOHN SMITH", first: "JOHN", last: "DOE",
			match: false, confidence: 0.65,
		},
		{
			name:      "last matches only",
			extracted: "JAMES DOE", first: "JOHN", last: "DOE",
			match: false, confidence: 0.65,
		},
		{
			name:      "no match at all",
			extracted: "ALICE WONDER", first: "JOHN", last: "DOE",
			match: false, confidence: 0.2,
		},
		{
			name:      "empty extracted name",
			extracted: "", first: "JOHN", last: "DOE",
			match: false, confidence: 0,
		},
		{
			name:      "empty provided first name",
			extracted: "JOHN DOE", first: "", last: "DOE",
			match: false, confidence: 0,
		},
		{
			name:      "empty provided last name",
			extracted: "JOHN DOE", first: "JOHN", last: "",
			match: false, confidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompareNames(tt.extracted, tt.first, tt.last)
			assert.Equal(t, tt.match, result.Match)
			assert.InDelta(t, tt.confidence, result.Confidence, 0.001)
			assert.NotEmpty(t, result.Reason)
		})
	}
}
