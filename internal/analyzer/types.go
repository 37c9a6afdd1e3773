package analyzer

import "github.com/blackwell-systems/asoscope/internal/scoring"

// maxCompetitors is how many top-ranked listings are summarized for
// display.
const maxCompetitors = 5

// Competitor summarizes one of the top-ranked listings.
type Competitor struct {
	Name      string  `json:"name"`
	Developer string  `json:"developer"`
	Ratings   int     `json:"ratings"`
	Rating    float64 `json:"rating"`
	Genre     string  `json:"genre"`
}

// Analysis is the per-keyword output record. Rendering layers depend only
// on this shape.
type Analysis struct {
	Keyword        string             `json:"keyword"`
	Difficulty     scoring.Difficulty `json:"difficulty"`
	Traffic        scoring.Traffic    `json:"traffic"`
	Opportunity    float64            `json:"opportunity"`
	ResultCount    int                `json:"result_count"`
	TopCompetitors []Competitor       `json:"top_competitors"`
}
