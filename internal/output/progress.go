package output

import (
	"fmt"

	"github.com/blackwell-systems/asoscope/internal/analyzer"
)

// FormatProgress renders the one-line progress entry emitted after each
// keyword completes, e.g. "[2/5] virtual pet  D:62 T:55 O:0.89".
func FormatProgress(i, total int, r *analyzer.Analysis) string {
	return fmt.Sprintf("[%d/%d] %s  D:%d T:%d O:%.2f",
		i, total, r.Keyword, r.Difficulty.Score, r.Traffic.Score, r.Opportunity)
}
