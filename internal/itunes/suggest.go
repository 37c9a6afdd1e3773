package itunes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"howett.net/plist"
)

// storeFrontUS identifies the US storefront. Together with
// clientApplication=Software it makes the hints endpoint return up to 10
// app-scoped suggestions instead of a single generic one.
const storeFrontUS = "143441-1,29"

// Suggestions returns the ordered autocomplete terms for a keyword
// (0-10 entries). The order reflects upstream relevance and is preserved.
// Any decode failure collapses to an empty slice at this boundary.
func (c *Client) Suggestions(ctx context.Context, term string) []string {
	params := url.Values{}
	params.Set("term", term)
	params.Set("clientApplication", "Software")

	header := http.Header{}
	header.Set("X-Apple-Store-Front", storeFrontUS)

	body, err := c.Get(ctx, c.cfg.HintsURL, params, header)
	if err != nil {
		return nil
	}

	terms, err := decodeHints(body)
	if err != nil {
		c.log.Warn().Err(err).Str("term", term).Msg("malformed hints response")
		return nil
	}
	return terms
}

// decodeHints extracts hints[].term from a binary property-list body.
func decodeHints(body []byte) ([]string, error) {
	var decoded struct {
		Hints []struct {
			Term string `plist:"term"`
		} `plist:"hints"`
	}
	if _, err := plist.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode property list: %w", err)
	}

	terms := make([]string, 0, len(decoded.Hints))
	for _, h := range decoded.Hints {
		if h.Term != "" {
			terms = append(terms, h.Term)
		}
	}
	return terms, nil
}
