package extraction

import (
	"strings"

	"github.com/jonathan/skill-matcher/internal/buckets"
	"github.com/jonathan/skill-matcher/internal/types"
)

// minSkills is the threshold below which extraction falls back to free-text
// heuristics even when a structured strategy already produced something.
// Recall over precision: a near-empty skill set makes every downstream
// comparison meaningless, a noisy one merely dilutes it.
const minSkills = 3

// JobSkills derives a bucketed skill set from a job record. Strategies are
// tried in priority order, stopping at the first that yields skills:
// enriched skills, flat skill list, prior match-result references,
// requirement/responsibility fragments, then free-text heuristics.
func JobSkills(job *types.JobRecord) types.SkillSet {
	var skills []string

	switch {
	case len(job.SkillsEnriched) > 0:
		skills = job.SkillsEnriched
	case len(job.Skills) > 0:
		skills = job.Skills
	case job.MatchResult != nil:
		skills = priorMatchSkills(job.MatchResult)
	}

	if len(skills) == 0 {
		skills = fromStructuredLists(job.Requirements, job.Responsibilities)
	}
	if len(skills) == 0 {
		skills = SkillsFromText(job.Description)
	}

	// Too few skills found: rerun the text heuristics over everything
	// available and merge, regardless of earlier success.
	if len(skills) < minSkills {
		freeText := strings.Join(job.Requirements, "\n") + "\n" +
			strings.Join(job.Responsibilities, "\n") + "\n" + job.Description
		skills = append(skills, SkillsFromText(freeText)...)
	}

	return bucketize(skills)
}

// CVSkills derives a bucketed skill set from a candidate record using the
// same strategy order as JobSkills.
func CVSkills(candidate *types.CandidateRecord) types.SkillSet {
	var skills []string

	switch {
	case len(candidate.SkillsEnriched) > 0:
		skills = candidate.SkillsEnriched
	case len(candidate.Skills) > 0:
		skills = candidate.Skills
	}

	if len(skills) == 0 {
		skills = SkillsFromText(candidate.Summary)
	}
	if len(skills) < minSkills && candidate.Summary != "" {
		skills = append(skills, SkillsFromText(candidate.Summary)...)
	}

	return bucketize(skills)
}

// priorMatchSkills recovers skill references from a previously persisted
// match result.
func priorMatchSkills(result *types.JobMatchResult) []string {
	var out []string
	for _, br := range result.BucketResults {
		out = append(out, br.JobSkills...)
	}
	return out
}

// fromStructuredLists splits requirement and responsibility lines into skill
// fragments on list delimiters, keeping fragments longer than 3 characters.
func fromStructuredLists(requirements, responsibilities []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range append(requirements, responsibilities...) {
		for _, frag := range splitFragments(line) {
			skill := NormalizeSkill(frag)
			if len(skill) <= 3 {
				continue
			}
			lower := strings.ToLower(skill)
			if seen[lower] {
				continue
			}
			seen[lower] = true
			out = append(out, skill)
		}
	}
	return out
}

// bucketize deduplicates skills case-insensitively and assigns each to its
// bucket via the categorizer.
func bucketize(skills []string) types.SkillSet {
	set := make(types.SkillSet)
	seen := make(map[string]bool, len(skills))
	for _, raw := range skills {
		skill := NormalizeSkill(raw)
		if skill == "" {
			continue
		}
		lower := strings.ToLower(skill)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		bucket := buckets.Categorize(skill, "")
		set[bucket] = append(set[bucket], skill)
	}
	return set
}
