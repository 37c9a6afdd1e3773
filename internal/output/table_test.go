package output

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/asoscope/internal/analyzer"
	"github.com/blackwell-systems/asoscope/internal/scoring"
)

func TestDifficultyLabel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Very Easy"},
		{20, "Very Easy"},
		{21, "Easy"},
		{40, "Easy"},
		{41, "Moderate"},
		{60, "Moderate"},
		{61, "Hard"},
		{80, "Hard"},
		{81, "Very Hard"},
		{100, "Very Hard"},
	}

	for _, tc := range cases {
		if got := DifficultyLabel(tc.score); got != tc.want {
			t.Errorf("DifficultyLabel(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestFormatTitleMatches(t *testing.T) {
	cases := []struct {
		name string
		tm   scoring.TitleMatchScore
		want string
	}{
		{"mixed tiers", scoring.TitleMatchScore{Exact: 3, Partial: 2}, "3 exact / 2 partial"},
		{"all tiers", scoring.TitleMatchScore{Exact: 1, Broad: 2, Partial: 3, None: 4}, "1 exact / 2 broad / 3 partial / 4 none"},
		{"no matches", scoring.TitleMatchScore{}, "0"},
	}

	for _, tc := range cases {
		if got := FormatTitleMatches(tc.tm); got != tc.want {
			t.Errorf("%s: FormatTitleMatches() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45678, "-45,678"},
	}

	for _, tc := range cases {
		if got := formatCount(tc.n); got != tc.want {
			t.Errorf("formatCount(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 24, "short"},
		{"exactly twenty-four chars", 25, "exactly twenty-four chars"},
		{"a rather long keyword that overflows", 24, "a rather long keyword..."},
		{"abcdef", 3, "abc"},
	}

	for _, tc := range cases {
		if got := truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}

func sampleAnalysis() *analyzer.Analysis {
	return &analyzer.Analysis{
		Keyword: "virtual pet",
		Difficulty: scoring.Difficulty{
			Score:        62,
			TitleMatches: scoring.TitleMatchScore{Exact: 4, Partial: 1, Score: 6.5},
			RatingCounts: scoring.RatingCountScore{AvgRatings: 41_000, MinRatings: 800, MaxRatings: 120_000, Score: 4.7},
			Saturation:   scoring.SaturationScore{MatchCount: 12, TotalChecked: 25, Percentage: 48.0, Score: 5.3},
			Freshness:    scoring.FreshnessScore{AvgDaysSinceUpdate: 45, Score: 9.2},
		},
		Traffic: scoring.Traffic{
			Score:           55,
			SuggestionCount: scoring.SuggestionCountScore{Count: 8, Suggestions: []string{"virtual pet", "virtual pet game"}, Score: 8.2},
			SuggestionMatch: scoring.SuggestionMatchScore{ExactMatch: true, PrefixMatch: true, Score: 10.0},
			ResultCount:     scoring.ResultCountScore{Count: 200, HitMax: true, Score: 10.0},
			RatingSpread:    scoring.RatingSpreadScore{MidTierAvgRatings: 3_400, Score: 4.1},
		},
		Opportunity: 0.89,
		ResultCount: 200,
		TopCompetitors: []analyzer.Competitor{
			{Name: "Virtual Pet Simulator", Developer: "Acme Apps", Ratings: 120_000, Rating: 4.6, Genre: "Games"},
		},
	}
}

func TestRenderSummaryTable(t *testing.T) {
	out := RenderSummaryTable([]*analyzer.Analysis{sampleAnalysis()})

	for _, want := range []string{
		"Keyword",
		"virtual pet",
		"Hard", // label for 62
		"41,000",
		"4 exact / 1 partial",
		"Sorted by: Opportunity",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryTableEmpty(t *testing.T) {
	if out := RenderSummaryTable(nil); out != "No keywords analyzed.\n" {
		t.Errorf("empty table = %q", out)
	}
}

func TestRenderDetailed(t *testing.T) {
	out := RenderDetailed(sampleAnalysis())

	for _, want := range []string{
		`KEYWORD: "virtual pet"`,
		"DIFFICULTY: 62/100",
		"TRAFFIC: 55/100",
		"OPPORTUNITY: 0.89",
		"Keyword Match: exact",
		"Result count: 200/200+ (max)",
		"Avg days since update: 45",
		"TOP COMPETITORS:",
		"Virtual Pet Simulator",
		"120,000 ratings | 4.6 stars | Games | Acme Apps",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detailed view missing %q:\n%s", want, out)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	got := FormatProgress(2, 5, sampleAnalysis())
	want := "[2/5] virtual pet  D:62 T:55 O:0.89"
	if got != want {
		t.Errorf("FormatProgress() = %q, want %q", got, want)
	}
}
