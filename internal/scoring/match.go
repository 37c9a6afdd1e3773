// Package scoring contains the pure scoring engine: title-match
// classification, the difficulty and traffic sub-scores, and the weighted
// composites. Every function is a pure function of its inputs; listing
// slices are never mutated.
package scoring

import "strings"

// MatchTier classifies how strongly a listing title targets a keyword.
// Values are ordered weakest to strongest so scorers can compare tiers
// directly.
type MatchTier int

const (
	MatchNone MatchTier = iota
	MatchPartial
	MatchBroad
	MatchExact
)

func (t MatchTier) String() string {
	switch t {
	case MatchExact:
		return "exact"
	case MatchBroad:
		return "broad"
	case MatchPartial:
		return "partial"
	default:
		return "none"
	}
}

// ClassifyTitleMatch reports the strongest tier the title satisfies for the
// keyword. Comparison is case-insensitive. Exact means the keyword appears
// as a contiguous substring anywhere in the title. Broad and partial apply
// to multi-word keywords only: broad when every keyword token is a
// substring of some title token, partial when at least one but not all
// tokens match. Single-word keywords only ever classify exact or none.
func ClassifyTitleMatch(keyword, title string) MatchTier {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	t := strings.ToLower(title)

	if strings.Contains(t, kw) {
		return MatchExact
	}

	kwTokens := strings.Fields(kw)
	if len(kwTokens) > 1 {
		titleTokens := strings.Fields(t)
		matched := 0
		for _, kwTok := range kwTokens {
			for _, titleTok := range titleTokens {
				if strings.Contains(titleTok, kwTok) {
					matched++
					break
				}
			}
		}
		if matched == len(kwTokens) {
			return MatchBroad
		}
		if matched > 0 {
			return MatchPartial
		}
	}

	return MatchNone
}
