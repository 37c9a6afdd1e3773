// Package keywords handles keyword list input for the CLI.
package keywords

import (
	"fmt"
	"os"
	"strings"
)

// Load reads keywords from a file, one per line. Blank lines and lines
// starting with '#' are skipped.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}

	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// Dedupe trims keywords and drops case-insensitive duplicates, preserving
// first-occurrence order.
func Dedupe(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, kw := range list {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
	}
	return out
}
