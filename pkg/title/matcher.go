package title

import "github.com/hbollon/go-edlib"

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

// Match is the result of ranking candidate titles against a query.
type Match struct {
	Index      int             // Position in the candidate slice, -1 if none
	Title      string          // The matched candidate title, verbatim
	Score      float64         // Jaro-Winkler similarity score (0.0-1.0)
	Confidence MatchConfidence // Confidence level based on score
}

// BestMatch finds the candidate title closest to the query.
// Uses Jaro-Winkler similarity on cleaned titles, which favors prefix
// matches (good for movie titles).
func BestMatch(query string, candidates []string) Match {
	best := Match{Index: -1, Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	cleanedQuery := Clean(query)
	for i, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(cleanedQuery, Clean(candidate)))
		if score > best.Score {
			best.Index = i
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
	}
	return best
}
