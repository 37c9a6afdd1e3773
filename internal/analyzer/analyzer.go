// Package analyzer orchestrates fetching and scoring into per-keyword
// analysis records.
package analyzer

import (
	"context"
	"time"

	"github.com/blackwell-systems/asoscope/internal/itunes"
	"github.com/blackwell-systems/asoscope/internal/scoring"
)

// StoreAPI is the upstream surface the analyzer needs. *itunes.Client
// satisfies it; tests substitute a stub.
type StoreAPI interface {
	Search(ctx context.Context, term, country string, limit int) []itunes.App
	Suggestions(ctx context.Context, term string) []string
}

// Analyzer runs the full pipeline for keywords, strictly one at a time.
// It adds no retries of its own; resilience lives in the client layer.
type Analyzer struct {
	api StoreAPI
	now func() time.Time
}

// New creates an Analyzer backed by the given upstream API.
func New(api StoreAPI) *Analyzer {
	return &Analyzer{api: api, now: time.Now}
}

// Analyze fetches listings and suggestions for one keyword and scores
// them. Empty upstream data is meaningful output (minimal competition and
// demand), never an error: the result always carries well-formed composite
// scores. Deterministic given identical upstream responses.
func (a *Analyzer) Analyze(ctx context.Context, keyword, country string) *Analysis {
	apps := a.api.Search(ctx, keyword, country, itunes.MaxResults)
	suggestions := a.api.Suggestions(ctx, keyword)

	difficulty := scoring.ComputeDifficulty(keyword, apps, a.now().UTC())
	traffic := scoring.ComputeTraffic(keyword, apps, suggestions)

	return &Analysis{
		Keyword:        keyword,
		Difficulty:     difficulty,
		Traffic:        traffic,
		Opportunity:    scoring.Opportunity(traffic.Score, difficulty.Score),
		ResultCount:    len(apps),
		TopCompetitors: topCompetitors(apps),
	}
}

// AnalyzeAll analyzes keywords sequentially in input order, one result per
// keyword. The progress callback, when non-nil, fires after each keyword
// completes.
func (a *Analyzer) AnalyzeAll(ctx context.Context, keywords []string, country string, progress func(i, total int, result *Analysis)) []*Analysis {
	results := make([]*Analysis, 0, len(keywords))
	for i, kw := range keywords {
		r := a.Analyze(ctx, kw, country)
		results = append(results, r)
		if progress != nil {
			progress(i+1, len(keywords), r)
		}
	}
	return results
}

func topCompetitors(apps []itunes.App) []Competitor {
	top := apps
	if len(top) > maxCompetitors {
		top = top[:maxCompetitors]
	}

	competitors := make([]Competitor, 0, len(top))
	for _, app := range top {
		name := app.Name
		if name == "" {
			name = "Unknown"
		}
		developer := app.Developer
		if developer == "" {
			developer = "Unknown"
		}
		competitors = append(competitors, Competitor{
			Name:      name,
			Developer: developer,
			Ratings:   app.RatingCount,
			Rating:    app.AverageRating,
			Genre:     app.Genre,
		})
	}
	return competitors
}
