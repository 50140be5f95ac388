package release

import (
	"github.com/hbollon/go-edlib"
)

// MatchConfidence represents the confidence level of a title match.
type MatchConfidence int

const (
	ConfidenceNone   MatchConfidence = iota // Score < 0.70
	ConfidenceLow                           // Score >= 0.70
	ConfidenceMedium                        // Score >= 0.85
	ConfidenceHigh                          // Score >= 0.95
)

func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MatchResult represents the result of a fuzzy title match.
type MatchResult struct {
	Title      string          // The matched candidate title
	Score      float64         // Jaro-Winkler similarity score (0.0-1.0)
	Confidence MatchConfidence // Confidence level based on score
}

// MatchTitle finds the candidate closest to query using Jaro-Winkler
// similarity over cleaned titles. Ties keep the earlier candidate.
// Below the low-confidence threshold the result carries no title.
func MatchTitle(query string, candidates []string) MatchResult {
	best := MatchResult{Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	q := CleanTitle(query)
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(q, CleanTitle(candidate)))
		if score > best.Score {
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Confidence = ConfidenceNone
		best.Title = ""
	}
	return best
}
