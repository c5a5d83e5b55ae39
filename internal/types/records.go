package types

// JobRecord is a job posting as read from the record store. The matcher only
// reads skill-relevant fields; everything else is carried through untouched by
// the store layer.
type JobRecord struct {
	ID               string   `json:"id"`
	Title            string   `json:"title,omitempty"`
	Company          string   `json:"company,omitempty"`
	URL              string   `json:"url,omitempty"`
	SkillsEnriched   []string `json:"skills_enriched,omitempty"` // structured skills from enrichment
	Skills           []string `json:"skills,omitempty"`          // flat skill list
	Requirements     []string `json:"requirements,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Description      string   `json:"description,omitempty"` // free text, may contain HTML
	// MatchResult is the previously persisted match for this job, if any.
	MatchResult *JobMatchResult `json:"match_result,omitempty"`
}

// CandidateRecord is a candidate profile as read from the record store
type CandidateRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name,omitempty"`
	SkillsEnriched []string `json:"skills_enriched,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Summary        string   `json:"summary,omitempty"` // free text fallback for extraction
}

// HasMatch reports whether the job already carries a valid nonzero match result.
// Batch matching skips such jobs unless reprocessing is forced.
func (j *JobRecord) HasMatch() bool {
	return j.MatchResult != nil && j.MatchResult.OverallMatch > 0
}
