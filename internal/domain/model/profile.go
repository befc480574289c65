package model

import (
	"fmt"
	"strings"
	"time"
)

// Category keys used in profile weights and comparison breakdowns.
const (
	CategoryCommitFrequency     = "commit_frequency"
	CategoryRepositoryCount     = "repository_count"
	CategoryStarsReceived       = "stars_received"
	CategoryForkCount           = "fork_count"
	CategoryLanguageMatch       = "language_match"
	CategoryCodeQualityEstimate = "code_quality_estimate"
)

// RangeRequirement is a requirement with a floor and an optimal target.
type RangeRequirement struct {
	Min     float64 `json:"min"`
	Optimal float64 `json:"optimal"`
}

// MinRequirement is a requirement with only a floor.
type MinRequirement struct {
	Min float64 `json:"min"`
}

// LanguageRequirement declares a required language and the share of the
// candidate's codebase expected in it, as a percentage in [0,100].
type LanguageRequirement struct {
	Language    string  `json:"language"`
	Proficiency float64 `json:"proficiency"`
}

// RequirementSet is the sparse set of requirement blocks on a profile.
// A nil block means the category is not evaluated at all; zero values are
// never used to signal absence.
type RequirementSet struct {
	CommitFrequency     *RangeRequirement     `json:"commit_frequency,omitempty"`
	RepositoryCount     *MinRequirement       `json:"repository_count,omitempty"`
	StarsReceived       *MinRequirement       `json:"stars_received,omitempty"`
	ForkCount           *MinRequirement       `json:"fork_count,omitempty"`
	CodeQualityEstimate *MinRequirement       `json:"code_quality_estimate,omitempty"`
	Languages           []LanguageRequirement `json:"language_requirements,omitempty"`
}

// StandardProfile is a reusable, user-authored scoring rubric.
type StandardProfile struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Metrics     RequirementSet     `json:"metrics"`
	Weights     map[string]float64 `json:"weights"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Weight returns the configured multiplier for a category, defaulting to 1.0
// for unspecified keys. A key explicitly set to zero stays zero.
func (p StandardProfile) Weight(category string) float64 {
	if w, ok := p.Weights[category]; ok {
		return w
	}
	return 1.0
}

// Validate enforces the profile invariants before a create or update is
// accepted. The scoring engine assumes validated input and never re-checks.
func (p StandardProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	if cf := p.Metrics.CommitFrequency; cf != nil && cf.Optimal <= cf.Min {
		return fmt.Errorf("%w: commit_frequency optimal (%g) must exceed min (%g)", ErrValidation, cf.Optimal, cf.Min)
	}
	if p.Metrics.Languages != nil && len(p.Metrics.Languages) == 0 {
		return fmt.Errorf("%w: language_requirements must contain at least one entry", ErrValidation)
	}
	for i, req := range p.Metrics.Languages {
		if strings.TrimSpace(req.Language) == "" {
			return fmt.Errorf("%w: language_requirements[%d] has an empty language", ErrValidation, i)
		}
		if req.Proficiency < 0 || req.Proficiency > 100 {
			return fmt.Errorf("%w: language_requirements[%d] proficiency %g outside [0,100]", ErrValidation, i, req.Proficiency)
		}
	}
	if q := p.Metrics.CodeQualityEstimate; q != nil && (q.Min < 0 || q.Min > 100) {
		return fmt.Errorf("%w: code_quality_estimate min %g outside [0,100]", ErrValidation, q.Min)
	}
	for key, w := range p.Weights {
		if w < 0 {
			return fmt.Errorf("%w: weight for %s must not be negative", ErrValidation, key)
		}
	}
	return nil
}
