package scoring

import (
	"math"
	"strings"

	"github.com/blackwell-systems/asoscope/internal/itunes"
)

const (
	maxSuggestions = 10 // hints endpoint returns at most 10 terms
	topSuggestions = 5  // suggestions retained for display

	midTierStart  = 10     // mid-tier window: listings ranked 11-25
	midTierEnd    = 25
	spreadCeiling = 10_000 // mid-tier avg ratings that maps to the max sub-score
)

// Traffic weights. Suggestion count is the strongest free demand signal.
const (
	suggestCountWeight = 6 // how many autocomplete suggestions come back?
	suggestMatchWeight = 2 // does the exact keyword appear in them?
	resultCountWeight  = 1 // total results (weak signal, loose matching)
	ratingSpreadWeight = 1 // do mid-tier apps also have ratings?
)

// SuggestionCountScore scales the number of autocomplete suggestions.
// Top keeps the first five terms, in upstream order, for display.
type SuggestionCountScore struct {
	Count       int      `json:"suggestion_count"`
	Suggestions []string `json:"suggestions"`
	Score       float64  `json:"score"`
}

// SuggestionMatchScore reports whether the keyword itself comes back from
// the autocomplete service.
type SuggestionMatchScore struct {
	ExactMatch  bool    `json:"exact_match"`
	PrefixMatch bool    `json:"prefix_match"`
	Score       float64 `json:"score"`
}

// ResultCountScore scales the total listing count against the search cap.
type ResultCountScore struct {
	Count  int     `json:"result_count"`
	HitMax bool    `json:"hit_max"`
	Score  float64 `json:"score"`
}

// RatingSpreadScore reports the rating volume of mid-tier listings.
type RatingSpreadScore struct {
	MidTierAvgRatings int     `json:"mid_tier_avg_ratings"`
	Score             float64 `json:"score"`
}

// Traffic is the 0-100 composite estimate of search demand for a keyword,
// with the sub-scores retained for explainability. Higher = more searches.
type Traffic struct {
	Score           int                  `json:"score"`
	SuggestionCount SuggestionCountScore `json:"suggestion_count"`
	SuggestionMatch SuggestionMatchScore `json:"suggestion_match"`
	ResultCount     ResultCountScore     `json:"result_count"`
	RatingSpread    RatingSpreadScore    `json:"rating_spread"`
}

// ScoreSuggestionCount scales the suggestion count linearly: 0 maps to 1.0
// and 10 (the endpoint maximum) to 10.0. Zero suggestions means nobody
// searches this; a full list means an actively searched niche.
func ScoreSuggestionCount(suggestions []string) SuggestionCountScore {
	count := len(suggestions)
	capped := count
	if capped > maxSuggestions {
		capped = maxSuggestions
	}

	top := suggestions
	if len(top) > topSuggestions {
		top = top[:topSuggestions]
	}

	return SuggestionCountScore{
		Count:       count,
		Suggestions: top,
		Score:       round2(1 + 9*float64(capped)/maxSuggestions),
	}
}

// ScoreSuggestionMatch checks whether the keyword comes back from the
// autocomplete service: exact (case-insensitive) match scores 10.0, a
// suggestion starting with the keyword 6.0, unrelated suggestions 3.0,
// and no suggestions at all 1.0.
func ScoreSuggestionMatch(keyword string, suggestions []string) SuggestionMatchScore {
	kw := strings.ToLower(strings.TrimSpace(keyword))

	var s SuggestionMatchScore
	for _, sug := range suggestions {
		low := strings.ToLower(sug)
		if low == kw {
			s.ExactMatch = true
		}
		if strings.HasPrefix(low, kw) {
			s.PrefixMatch = true
		}
	}

	switch {
	case s.ExactMatch:
		s.Score = 10.0
	case s.PrefixMatch:
		s.Score = 6.0
	case len(suggestions) > 0:
		s.Score = 3.0
	default:
		s.Score = 1.0
	}
	return s
}

// ScoreResultCount scales the total listing count: 0 maps to 1.0 and the
// search cap (200) to 10.0.
func ScoreResultCount(apps []itunes.App) ResultCountScore {
	count := len(apps)
	return ResultCountScore{
		Count:  count,
		HitMax: count >= itunes.MaxResults,
		Score:  round2(1 + 9*math.Min(float64(count), itunes.MaxResults)/itunes.MaxResults),
	}
}

// ScoreRatingSpread averages the rating counts of listings ranked 11-25.
// When fewer than 11 listings exist the full set is used instead. Mid-tier
// apps with real rating volume indicate broad traffic beyond the head.
func ScoreRatingSpread(apps []itunes.App) RatingSpreadScore {
	midTier := apps
	if len(apps) > midTierStart {
		end := midTierEnd
		if end > len(apps) {
			end = len(apps)
		}
		midTier = apps[midTierStart:end]
	}
	if len(midTier) == 0 {
		return RatingSpreadScore{Score: 1.0}
	}

	sum := 0
	for _, app := range midTier {
		sum += app.RatingCount
	}
	avg := float64(sum) / float64(len(midTier))

	return RatingSpreadScore{
		MidTierAvgRatings: int(math.Round(avg)),
		Score:             round2(1 + 9*math.Min(avg, spreadCeiling)/spreadCeiling),
	}
}

// ComputeTraffic combines the four traffic sub-scores into the 0-100
// composite.
func ComputeTraffic(keyword string, apps []itunes.App, suggestions []string) Traffic {
	t := Traffic{
		SuggestionCount: ScoreSuggestionCount(suggestions),
		SuggestionMatch: ScoreSuggestionMatch(keyword, suggestions),
		ResultCount:     ScoreResultCount(apps),
		RatingSpread:    ScoreRatingSpread(apps),
	}
	t.Score = weightedComposite(
		[]float64{suggestCountWeight, suggestMatchWeight, resultCountWeight, ratingSpreadWeight},
		[]float64{t.SuggestionCount.Score, t.SuggestionMatch.Score, t.ResultCount.Score, t.RatingSpread.Score},
	)
	return t
}
