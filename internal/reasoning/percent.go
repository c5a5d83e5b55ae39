package reasoning

import (
	"regexp"
	"strconv"
)

// Percentage extraction patterns, tried in order; the first match wins.
// The reasoning service is asked for "N%" but free-form replies drift, so
// several soft formats are accepted.
var (
	percentRe  = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	wordRe     = regexp.MustCompile(`(?i)(\d{1,3}(?:\.\d+)?)\s*percent`)
	decimalRe  = regexp.MustCompile(`\b(0\.\d+|1\.0+)\b`)
	fractionRe = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*(?:out of|/)\s*10\b`)

	confidenceRe = regexp.MustCompile(`(?i)confidence[:\s]+(\d{1,3}(?:\.\d+)?)\s*%?`)
)

// ExtractPercentage pulls a match score out of free-form response text and
// normalizes it to [0,1]. Returns false when no pattern matches.
func ExtractPercentage(text string) (float64, bool) {
	if m := percentRe.FindStringSubmatch(text); m != nil {
		return clamp(parseFloat(m[1]) / 100), true
	}
	if m := wordRe.FindStringSubmatch(text); m != nil {
		return clamp(parseFloat(m[1]) / 100), true
	}
	if m := decimalRe.FindStringSubmatch(text); m != nil {
		return clamp(parseFloat(m[1])), true
	}
	if m := fractionRe.FindStringSubmatch(text); m != nil {
		return clamp(parseFloat(m[1]) / 10), true
	}
	return 0, false
}

// ExtractConfidence pulls the service's own stated confidence from the
// response text, normalized to [0,1]. Returns false when it is not stated.
func ExtractConfidence(text string) (float64, bool) {
	m := confidenceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v := parseFloat(m[1])
	if v > 1 {
		v /= 100
	}
	return clamp(v), true
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
