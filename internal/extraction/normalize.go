// Package extraction derives bucketed skill sets from job and candidate records.
package extraction

import "strings"

// canonicalNames maps common skill spelling variants to one canonical form so
// that deduplication and cache keys are stable across records.
var canonicalNames = map[string]string{
	"golang":       "Go",
	"go lang":      "Go",
	"javascript":   "JavaScript",
	"js":           "JavaScript",
	"typescript":   "TypeScript",
	"ts":           "TypeScript",
	"k8s":          "Kubernetes",
	"kubernetes":   "Kubernetes",
	"react.js":     "React",
	"reactjs":      "React",
	"vue.js":       "Vue",
	"vuejs":        "Vue",
	"node.js":      "Node.js",
	"nodejs":       "Node.js",
	"node":         "Node.js",
	"postgres":     "PostgreSQL",
	"postgresql":   "PostgreSQL",
	"ms sql":       "SQL Server",
	"aws":          "AWS",
	"gcp":          "GCP",
	"ci/cd":        "CI/CD",
	"ml":           "Machine Learning",
	"ai":           "Artificial Intelligence",
	"powerbi":      "Power BI",
	"power bi":     "Power BI",
	"scrum master": "Scrum",
}

// NormalizeSkill trims a raw skill fragment and maps known variants to their
// canonical spelling. Unknown single lowercase words get their first letter
// capitalized; anything already mixed-case passes through unchanged.
func NormalizeSkill(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, ".:;,-•*")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}

	// All-caps multiword strings are usually shouting, not acronyms.
	if s == strings.ToUpper(s) && strings.Contains(s, " ") {
		return titleCase(lower)
	}

	// Single lowercase word: capitalize the first letter.
	if s == lower && !strings.Contains(s, " ") {
		return strings.ToUpper(s[:1]) + s[1:]
	}

	return s
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
