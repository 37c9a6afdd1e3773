// Package output provides terminal rendering for keyword analyses.
//
// This package includes:
//   - The summary table sorted by opportunity
//   - The detailed per-keyword breakdown with sub-score diagnostics
//   - Difficulty labels and tier colors
//
// All rendering uses ASCII layout with ANSI color codes emitted only when
// stdout is a terminal.
package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/asoscope/internal/analyzer"
	"github.com/blackwell-systems/asoscope/internal/itunes"
	"github.com/blackwell-systems/asoscope/internal/scoring"
)

// ANSI color codes for difficulty display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// DifficultyLabel maps a 0-100 difficulty composite to a coarse label.
func DifficultyLabel(score int) string {
	switch {
	case score <= 20:
		return "Very Easy"
	case score <= 40:
		return "Easy"
	case score <= 60:
		return "Moderate"
	case score <= 80:
		return "Hard"
	default:
		return "Very Hard"
	}
}

// difficultyColor returns the ANSI color for a difficulty composite.
func difficultyColor(score int) string {
	switch {
	case score <= 40:
		return colorGreen
	case score <= 60:
		return colorYellow
	default:
		return colorRed
	}
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// FormatTitleMatches renders tier counts as a compact string, e.g.
// "3 exact / 2 partial". Zero counts are omitted.
func FormatTitleMatches(tm scoring.TitleMatchScore) string {
	var parts []string
	for _, entry := range []struct {
		tier  string
		count int
	}{
		{"exact", tm.Exact},
		{"broad", tm.Broad},
		{"partial", tm.Partial},
		{"none", tm.None},
	} {
		if entry.count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", entry.count, entry.tier))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " / ")
}

// RenderSummaryTable renders the per-keyword summary table. Expects
// results pre-sorted by the caller (by opportunity, descending).
func RenderSummaryTable(results []*analyzer.Analysis) string {
	if len(results) == 0 {
		return "No keywords analyzed.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-5s %-10s %-8s %-12s %-12s %s\n",
		"Keyword", "Diff", "Level", "Traffic", "Opportunity", "Avg Ratings", "Title Matches"))
	sb.WriteString(strings.Repeat("─", 96))
	sb.WriteString("\n")

	for _, r := range results {
		label := DifficultyLabel(r.Difficulty.Score)
		row := fmt.Sprintf("%-24s %-5d %-10s %-8d %-12.2f %-12s %s\n",
			truncate(r.Keyword, 24),
			r.Difficulty.Score,
			label,
			r.Traffic.Score,
			r.Opportunity,
			formatCount(r.Difficulty.RatingCounts.AvgRatings),
			FormatTitleMatches(r.Difficulty.TitleMatches))
		if IsColorEnabled() {
			// Color only the label column so alignment is unaffected.
			row = strings.Replace(row, label, difficultyColor(r.Difficulty.Score)+label+colorReset, 1)
		}
		sb.WriteString(row)
	}

	sb.WriteString("\n")
	sb.WriteString("Sorted by: Opportunity (higher = better keyword to target)\n")
	sb.WriteString("Difficulty: 0-100 (lower = easier) | Traffic: 0-100 (higher = more searches)\n")

	return sb.String()
}

// RenderDetailed renders the full sub-score breakdown for one keyword.
func RenderDetailed(r *analyzer.Analysis) string {
	var sb strings.Builder

	d := r.Difficulty
	t := r.Traffic

	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("KEYWORD: %q\n", r.Keyword))
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")

	label := DifficultyLabel(d.Score)
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %d/100 (%s)\n", d.Score, colorize(difficultyColor(d.Score), label)))
	sb.WriteString(fmt.Sprintf("├─ Title Match Score: %.2f/10\n", d.TitleMatches.Score))
	sb.WriteString(fmt.Sprintf("│  %s\n", FormatTitleMatches(d.TitleMatches)))
	sb.WriteString(fmt.Sprintf("├─ Competitor Strength: %.2f/10\n", d.RatingCounts.Score))
	sb.WriteString(fmt.Sprintf("│  Avg ratings: %s (range %s - %s)\n",
		formatCount(d.RatingCounts.AvgRatings),
		formatCount(d.RatingCounts.MinRatings),
		formatCount(d.RatingCounts.MaxRatings)))
	sb.WriteString(fmt.Sprintf("├─ Saturation: %.2f/10\n", d.Saturation.Score))
	sb.WriteString(fmt.Sprintf("│  %d/%d top results have keyword in title (%.1f%%)\n",
		d.Saturation.MatchCount, d.Saturation.TotalChecked, d.Saturation.Percentage))
	sb.WriteString(fmt.Sprintf("└─ Freshness: %.2f/10\n", d.Freshness.Score))
	sb.WriteString(fmt.Sprintf("   Avg days since update: %d\n\n", d.Freshness.AvgDaysSinceUpdate))

	sb.WriteString(fmt.Sprintf("TRAFFIC: %d/100\n", t.Score))
	sb.WriteString(fmt.Sprintf("├─ Suggestion Count: %d/10 (score: %.2f/10)\n",
		t.SuggestionCount.Count, t.SuggestionCount.Score))
	for _, s := range t.SuggestionCount.Suggestions {
		sb.WriteString(fmt.Sprintf("│  - %q\n", s))
	}
	sb.WriteString(fmt.Sprintf("├─ Keyword Match: %s (score: %.2f/10)\n",
		suggestionMatchStatus(t.SuggestionMatch), t.SuggestionMatch.Score))
	sb.WriteString(fmt.Sprintf("├─ Result count: %d/%d%s\n",
		t.ResultCount.Count, itunes.MaxResults, hitMaxSuffix(t.ResultCount.HitMax)))
	sb.WriteString(fmt.Sprintf("└─ Mid-tier avg ratings: %s\n\n",
		formatCount(t.RatingSpread.MidTierAvgRatings)))

	sb.WriteString(fmt.Sprintf("OPPORTUNITY: %.2f\n", r.Opportunity))

	if len(r.TopCompetitors) > 0 {
		sb.WriteString("\nTOP COMPETITORS:\n")
		for i, comp := range r.TopCompetitors {
			stars := "N/A"
			if comp.Rating > 0 {
				stars = fmt.Sprintf("%.1f", comp.Rating)
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, comp.Name))
			sb.WriteString(fmt.Sprintf("   %s ratings | %s stars | %s | %s\n",
				formatCount(comp.Ratings), stars, comp.Genre, comp.Developer))
		}
	}

	return sb.String()
}

func suggestionMatchStatus(sm scoring.SuggestionMatchScore) string {
	switch {
	case sm.ExactMatch:
		return "exact"
	case sm.PrefixMatch:
		return "prefix"
	default:
		return "none"
	}
}

func hitMaxSuffix(hitMax bool) string {
	if hitMax {
		return "+ (max)"
	}
	return ""
}

// formatCount renders an integer with thousands separators, e.g. "12,345".
func formatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var sb strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
