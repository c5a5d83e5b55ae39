package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// indicatorPhrases introduce skill mentions in prose descriptions. The text
// following an indicator (up to the next sentence boundary) is split into
// candidate skills.
var indicatorPhrases = []string{
	"experience with",
	"experience in",
	"proficient in",
	"proficiency in",
	"knowledge of",
	"familiarity with",
	"familiar with",
	"expertise in",
	"skilled in",
	"background in",
	"working with",
	"hands-on with",
}

var (
	bulletLineRe = regexp.MustCompile(`^\s*[-•*·▪]\s*(.+)$`)
	sectionRe    = regexp.MustCompile(`(?i)^\s*(requirements|qualifications|skills|what you bring|must have|nice to have)\b`)
	// mixedCaseTokenRe catches capitalized or mixed-case tokens such as
	// "Kubernetes", "PostgreSQL" or "PyTorch", a heuristic proxy for
	// technology names.
	mixedCaseTokenRe = regexp.MustCompile(`\b([A-Z][a-zA-Z0-9+#./-]{2,}|[a-z]+[A-Z][a-zA-Z0-9]+)\b`)
	sentenceEndRe    = regexp.MustCompile(`[.!?\n]`)
)

// stopwords are capitalized words that are common prose, not skills.
var stopwords = map[string]bool{
	"The": true, "This": true, "That": true, "With": true, "Your": true,
	"You": true, "Our": true, "We": true, "And": true, "For": true,
	"Must": true, "Have": true, "Will": true, "Are": true, "What": true,
	"Who": true, "About": true, "Not": true, "All": true, "Other": true,
	"Please": true, "Apply": true, "More": true, "Years": true, "Year": true,
	"Strong": true, "Good": true, "Ability": true, "Required": true,
	"Preferred": true, "Requirements": true, "Skills": true, "Experience": true,
	"Knowledge": true, "Team": true, "Company": true, "Role": true, "Job": true,
}

// StripHTML reduces an HTML description to its text content. Plain text
// passes through untouched.
func StripHTML(description string) string {
	if !strings.Contains(description, "<") {
		return description
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return description
	}

	// Turn block elements into line breaks so bullet detection still works.
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n- ")
	})
	doc.Find("br, p, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Text()
}

// SkillsFromText extracts candidate skill strings from unstructured
// description text. This is intentionally recall-heavy: bullet lines, lines
// under requirement/skill headers, mixed-case tokens and phrases following
// indicator verbs are all collected; precision is recovered downstream by
// normalization and bucket comparison.
func SkillsFromText(text string) []string {
	text = StripHTML(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(raw string) {
		skill := NormalizeSkill(raw)
		if len(skill) <= 3 {
			return
		}
		lower := strings.ToLower(skill)
		if seen[lower] {
			return
		}
		seen[lower] = true
		out = append(out, skill)
	}

	lines := strings.Split(text, "\n")
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			inSection = false
			continue
		}

		if m := bulletLineRe.FindStringSubmatch(line); m != nil {
			for _, frag := range splitFragments(m[1]) {
				add(frag)
			}
			continue
		}

		if sectionRe.MatchString(trimmed) {
			inSection = true
			continue
		}
		if inSection {
			for _, frag := range splitFragments(trimmed) {
				add(frag)
			}
			continue
		}

		// Indicator phrases inside prose lines.
		lower := strings.ToLower(trimmed)
		for _, phrase := range indicatorPhrases {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				continue
			}
			rest := trimmed[idx+len(phrase):]
			if end := sentenceEndRe.FindStringIndex(rest); end != nil {
				rest = rest[:end[0]]
			}
			for _, frag := range splitFragments(rest) {
				add(frag)
			}
		}
	}

	// Capitalized / mixed-case tokens from the whole text.
	for _, m := range mixedCaseTokenRe.FindAllString(text, -1) {
		if stopwords[m] {
			continue
		}
		add(m)
	}

	return out
}

// splitFragments splits structured requirement text on list delimiters.
func splitFragments(s string) []string {
	s = strings.ReplaceAll(s, " and ", ",")
	s = strings.ReplaceAll(s, ";", ",")
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > 3 {
			out = append(out, p)
		}
	}
	return out
}
