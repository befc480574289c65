// Package scoring computes comparison results from raw GitHub metrics and a
// standard profile. The computation is a single-pass pure function: no I/O,
// no side effects, deterministic for identical inputs.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// Scoring thresholds. Categories at or above strengthThreshold are reported
// as strengths, below weaknessThreshold as weaknesses; the band between is
// neutral. Recommendation cutoffs are inclusive lower bounds.
const (
	maxCategoryScore  = 100.0
	strengthThreshold = 80.0
	weaknessThreshold = 50.0
	hireCutoff        = 75.0
	considerCutoff    = 50.0
)

// evaluationOrder fixes both the order categories are scored in and the
// order strengths and weaknesses are appended.
var evaluationOrder = []string{
	model.CategoryCommitFrequency,
	model.CategoryRepositoryCount,
	model.CategoryStarsReceived,
	model.CategoryLanguageMatch,
	model.CategoryCodeQualityEstimate,
}

// Scorer maps metrics plus a standard profile to a comparison result.
type Scorer interface {
	// Score never fails for validated input. Absent requirement blocks are
	// skipped entirely; division guards make zero-byte language breakdowns
	// and empty profiles safe.
	Score(metrics model.GitHubMetrics, profile model.StandardProfile) model.ComparisonResult
}

// WeightedScorer implements Scorer with ratio-based per-category scores and a
// weight-normalized overall average.
type WeightedScorer struct{}

// New creates a WeightedScorer.
func New() *WeightedScorer {
	return &WeightedScorer{}
}

// categoryOutcome carries one evaluated category through aggregation.
type categoryOutcome struct {
	score       float64
	weight      float64
	description string
	strength    string
	weakness    string
}

// Score evaluates every requirement block present on the profile, in the
// fixed evaluation order, and aggregates the weighted overall score.
func (s *WeightedScorer) Score(metrics model.GitHubMetrics, profile model.StandardProfile) model.ComparisonResult {
	result := model.ComparisonResult{
		Breakdown:  make(map[string]model.CategoryScore),
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	var totalWeight, weightedSum float64

	for _, category := range evaluationOrder {
		outcome, evaluated := s.evaluate(category, metrics, profile)
		if !evaluated {
			continue
		}

		totalWeight += outcome.weight
		weightedSum += outcome.score * outcome.weight

		result.Breakdown[category] = model.CategoryScore{
			Score:       outcome.score,
			Weight:      outcome.weight,
			Description: outcome.description,
		}

		switch {
		case outcome.score >= strengthThreshold:
			result.Strengths = append(result.Strengths, outcome.strength)
		case outcome.score < weaknessThreshold:
			result.Weaknesses = append(result.Weaknesses, outcome.weakness)
		}
	}

	if totalWeight > 0 {
		result.OverallScore = weightedSum / totalWeight
	}
	result.Recommendation = recommend(result.OverallScore)

	return result
}

// evaluate dispatches one category. The second return is false when the
// profile does not configure the category.
func (s *WeightedScorer) evaluate(category string, metrics model.GitHubMetrics, profile model.StandardProfile) (categoryOutcome, bool) {
	switch category {
	case model.CategoryCommitFrequency:
		req := profile.Metrics.CommitFrequency
		if req == nil {
			return categoryOutcome{}, false
		}
		return categoryOutcome{
			score:       ratioScore(metrics.CommitFrequency, req.Optimal),
			weight:      profile.Weight(category),
			description: fmt.Sprintf("%.1f commits per day (optimal: %g)", metrics.CommitFrequency, req.Optimal),
			strength:    "Consistent commit activity",
			weakness:    "Low commit frequency",
		}, true

	case model.CategoryRepositoryCount:
		req := profile.Metrics.RepositoryCount
		if req == nil {
			return categoryOutcome{}, false
		}
		return categoryOutcome{
			score:       ratioScore(float64(metrics.RepositoryCount), req.Min),
			weight:      profile.Weight(category),
			description: fmt.Sprintf("%d repositories (min: %g)", metrics.RepositoryCount, req.Min),
			strength:    "Good portfolio of projects",
			weakness:    "Limited number of public repositories",
		}, true

	case model.CategoryStarsReceived:
		req := profile.Metrics.StarsReceived
		if req == nil {
			return categoryOutcome{}, false
		}
		return categoryOutcome{
			score:       ratioScore(float64(metrics.StarsReceived), req.Min),
			weight:      profile.Weight(category),
			description: fmt.Sprintf("%d stars received (min: %g)", metrics.StarsReceived, req.Min),
			strength:    "Projects have good community recognition",
			weakness:    "Limited project popularity",
		}, true

	case model.CategoryLanguageMatch:
		if len(profile.Metrics.Languages) == 0 {
			return categoryOutcome{}, false
		}
		score, description := s.languageMatch(metrics, profile.Metrics.Languages)
		return categoryOutcome{
			score:       score,
			weight:      profile.Weight(category),
			description: description,
			strength:    "Strong match with required programming languages",
			weakness:    "Limited experience with required programming languages",
		}, true

	case model.CategoryCodeQualityEstimate:
		req := profile.Metrics.CodeQualityEstimate
		if req == nil {
			return categoryOutcome{}, false
		}
		return categoryOutcome{
			score:       ratioScore(metrics.CodeQualityEstimate, req.Min),
			weight:      profile.Weight(category),
			description: fmt.Sprintf("Quality score: %.1f (min: %g)", metrics.CodeQualityEstimate, req.Min),
			strength:    "High quality codebase",
			weakness:    "Improvements needed in code quality",
		}, true
	}

	return categoryOutcome{}, false
}

// languageMatch aggregates a proficiency-weighted sum over the declared
// requirements: languages with a higher required proficiency count more
// toward the category score. This is deliberately not a simple average.
func (s *WeightedScorer) languageMatch(metrics model.GitHubMetrics, requirements []model.LanguageRequirement) (float64, string) {
	totalBytes := metrics.TotalLanguageBytes()

	var matchScore float64
	segments := make([]string, 0, len(requirements))

	for _, req := range requirements {
		var percentage float64
		if totalBytes > 0 {
			percentage = float64(metrics.LanguageBytes[req.Language]) / float64(totalBytes) * 100
		}
		match := ratioScore(percentage, req.Proficiency)
		matchScore += match * (req.Proficiency / 100)

		segments = append(segments, fmt.Sprintf("%s: %.1f%% (required: %g%%)", req.Language, percentage, req.Proficiency))
	}

	return matchScore, "Language match: " + strings.Join(segments, ", ")
}

// ratioScore is min(100, actual/reference*100). A non-positive reference is a
// trivially satisfied requirement: any positive actual scores full marks, and
// only a zero actual against a zero floor scores zero. The low end is
// intentionally uncapped above zero; exceeding the reference is not rewarded
// beyond 100.
func ratioScore(actual, reference float64) float64 {
	if reference <= 0 {
		if actual > 0 {
			return maxCategoryScore
		}
		return 0
	}
	return math.Min(maxCategoryScore, actual/reference*100)
}

// recommend classifies an overall score into a hiring recommendation.
func recommend(overall float64) string {
	switch {
	case overall >= hireCutoff:
		return model.RecommendationHire
	case overall >= considerCutoff:
		return model.RecommendationConsider
	default:
		return model.RecommendationNoHire
	}
}
