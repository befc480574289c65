package model

import "time"

// Recommendation labels. The classification of OverallScore is total and
// ordered: >= 75 Hire, >= 50 Consider, below that No Hire.
const (
	RecommendationHire     = "Hire"
	RecommendationConsider = "Consider"
	RecommendationNoHire   = "No Hire"
)

// CategoryScore is one scored dimension of a comparison.
type CategoryScore struct {
	Score       float64 `json:"score"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// ComparisonResult is the immutable output of one scoring run.
type ComparisonResult struct {
	OverallScore   float64                  `json:"overall_score"`
	Recommendation string                   `json:"recommendation"`
	Breakdown      map[string]CategoryScore `json:"metrics_breakdown"`
	Strengths      []string                 `json:"strengths"`
	Weaknesses     []string                 `json:"weaknesses"`
}

// ComparisonRecord persists one scoring result tied to a candidate and a
// profile. ProfileName is denormalized at creation time so the record stays
// readable after the referenced profile is deleted. Never mutated.
type ComparisonRecord struct {
	ID                string           `json:"id"`
	CandidateUsername string           `json:"candidate_username"`
	ProfileID         string           `json:"standard_profile_id"`
	ProfileName       string           `json:"standard_profile_name"`
	OwnerID           string           `json:"owner_id"`
	Result            ComparisonResult `json:"result"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ComparisonView is a ComparisonRecord enriched for presentation with live
// candidate display data and a freshly computed language breakdown. The
// breakdown may drift from the data used at scoring time; that staleness is
// accepted and reads never re-score.
type ComparisonView struct {
	ComparisonRecord
	Candidate *Candidate      `json:"candidate,omitempty"`
	Languages []LanguageShare `json:"language_breakdown,omitempty"`
}
