package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/blackwell-systems/asoscope/internal/itunes"
)

// Scoring windows and scale ceilings.
const (
	topN        = 10 // listings considered for the detailed sub-scores
	saturationN = 25 // listings considered for saturation

	ratingCeiling     = 100_000 // avg ratings that maps to the max sub-score
	freshnessCeiling  = 500     // days since update that maps to the min sub-score
	staleFallbackDays = 999     // diagnostic age when no dates parse
)

// Difficulty weights. Higher weight = more influence on the composite.
const (
	titleMatchWeight  = 4 // do top apps target this keyword in their name?
	ratingCountWeight = 5 // ratings of top apps (proxy for installs)
	saturationWeight  = 3 // % of results with the keyword in their title
	freshnessWeight   = 1 // are top apps recently updated?
)

// TitleMatchScore reports how precisely the top listings target the
// keyword in their names.
type TitleMatchScore struct {
	Exact   int     `json:"exact"`
	Broad   int     `json:"broad"`
	Partial int     `json:"partial"`
	None    int     `json:"none"`
	Score   float64 `json:"score"`
}

// RatingCountScore reports the rating volume of the top listings.
type RatingCountScore struct {
	AvgRatings int     `json:"avg_ratings"`
	MaxRatings int     `json:"max_ratings"`
	MinRatings int     `json:"min_ratings"`
	Score      float64 `json:"score"`
}

// SaturationScore reports what fraction of the top results carry the
// keyword verbatim in their title.
type SaturationScore struct {
	MatchCount   int     `json:"title_match_count"`
	TotalChecked int     `json:"total_checked"`
	Percentage   float64 `json:"percentage"`
	Score        float64 `json:"score"`
}

// FreshnessScore reports how recently the top listings were updated.
type FreshnessScore struct {
	AvgDaysSinceUpdate int     `json:"avg_days_since_update"`
	Score              float64 `json:"score"`
}

// Difficulty is the 0-100 composite estimate of how hard ranking for a
// keyword would be, with the sub-scores retained for explainability.
// Lower = easier to rank.
type Difficulty struct {
	Score        int              `json:"score"`
	TitleMatches TitleMatchScore  `json:"title_matches"`
	RatingCounts RatingCountScore `json:"rating_counts"`
	Saturation   SaturationScore  `json:"saturation"`
	Freshness    FreshnessScore   `json:"freshness"`
}

// ScoreTitleMatches classifies the top listings against the keyword and
// weights the tiers (exact 10, broad 5, partial 2.5) into a 1-10 score.
func ScoreTitleMatches(keyword string, apps []itunes.App) TitleMatchScore {
	top := topSlice(apps, topN)
	if len(top) == 0 {
		return TitleMatchScore{Score: 1.0}
	}

	var s TitleMatchScore
	for _, app := range top {
		switch ClassifyTitleMatch(keyword, app.Name) {
		case MatchExact:
			s.Exact++
		case MatchBroad:
			s.Broad++
		case MatchPartial:
			s.Partial++
		default:
			s.None++
		}
	}

	raw := 10*float64(s.Exact) + 5*float64(s.Broad) + 2.5*float64(s.Partial)
	s.Score = round2(clamp(raw/float64(len(top)), 1, 10))
	return s
}

// ScoreRatingCounts scales the average rating count of the top listings:
// 0 maps to 1.0 and ratingCeiling or more maps to 10.0.
func ScoreRatingCounts(apps []itunes.App) RatingCountScore {
	top := topSlice(apps, topN)
	if len(top) == 0 {
		return RatingCountScore{Score: 1.0}
	}

	sum := 0
	minRatings, maxRatings := top[0].RatingCount, top[0].RatingCount
	for _, app := range top {
		sum += app.RatingCount
		if app.RatingCount < minRatings {
			minRatings = app.RatingCount
		}
		if app.RatingCount > maxRatings {
			maxRatings = app.RatingCount
		}
	}

	avg := float64(sum) / float64(len(top))
	return RatingCountScore{
		AvgRatings: int(math.Round(avg)),
		MaxRatings: maxRatings,
		MinRatings: minRatings,
		Score:      round2(1 + 9*math.Min(avg, ratingCeiling)/ratingCeiling),
	}
}

// ScoreSaturation scales the fraction of the top 25 listings whose title
// contains the keyword as a substring: 0% maps to 1.0, 100% to 10.0.
func ScoreSaturation(keyword string, apps []itunes.App) SaturationScore {
	top := topSlice(apps, saturationN)
	if len(top) == 0 {
		return SaturationScore{Score: 1.0}
	}

	kw := strings.ToLower(keyword)
	matched := 0
	for _, app := range top {
		if strings.Contains(strings.ToLower(app.Name), kw) {
			matched++
		}
	}

	pct := float64(matched) / float64(len(top))
	return SaturationScore{
		MatchCount:   matched,
		TotalChecked: len(top),
		Percentage:   round1(pct * 100),
		Score:        round2(1 + 9*pct),
	}
}

// ScoreFreshness inverts the average age of the top listings: 0 days since
// update maps to 10.0 (actively maintained, harder to displace) and
// freshnessCeiling or more to 1.0. The update date falls back to the
// original release date; listings with unparseable dates are excluded, and
// when none parse the component degrades to "very stale".
func ScoreFreshness(apps []itunes.App, now time.Time) FreshnessScore {
	top := topSlice(apps, topN)
	if len(top) == 0 {
		return FreshnessScore{AvgDaysSinceUpdate: staleFallbackDays, Score: 1.0}
	}

	totalDays, counted := 0, 0
	for _, app := range top {
		raw := app.CurrentVersionReleaseDate
		if raw == "" {
			raw = app.ReleaseDate
		}
		if raw == "" {
			continue
		}
		updated, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		days := int(now.Sub(updated).Hours() / 24)
		if days < 0 {
			days = 0
		}
		totalDays += days
		counted++
	}

	if counted == 0 {
		return FreshnessScore{AvgDaysSinceUpdate: staleFallbackDays, Score: 1.0}
	}

	avg := float64(totalDays) / float64(counted)
	score := 1 + 9*(freshnessCeiling-math.Min(avg, freshnessCeiling))/freshnessCeiling
	return FreshnessScore{
		AvgDaysSinceUpdate: int(math.Round(avg)),
		Score:              round2(score),
	}
}

// ComputeDifficulty combines the four difficulty sub-scores into the 0-100
// composite. now anchors the freshness calculation so identical inputs
// always produce identical output.
func ComputeDifficulty(keyword string, apps []itunes.App, now time.Time) Difficulty {
	d := Difficulty{
		TitleMatches: ScoreTitleMatches(keyword, apps),
		RatingCounts: ScoreRatingCounts(apps),
		Saturation:   ScoreSaturation(keyword, apps),
		Freshness:    ScoreFreshness(apps, now),
	}
	d.Score = weightedComposite(
		[]float64{titleMatchWeight, ratingCountWeight, saturationWeight, freshnessWeight},
		[]float64{d.TitleMatches.Score, d.RatingCounts.Score, d.Saturation.Score, d.Freshness.Score},
	)
	return d
}

func topSlice(apps []itunes.App, n int) []itunes.App {
	if len(apps) < n {
		return apps
	}
	return apps[:n]
}
