package itunes

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// MaxResults is the hard cap the search endpoint enforces on the limit
// parameter.
const MaxResults = 200

// Search queries the App Store for software listings matching term.
// The requested limit is capped at MaxResults. Upstream ordering is a
// relevance ranking and is preserved. A missing response or malformed
// body yields an empty slice, never an error.
func (c *Client) Search(ctx context.Context, term, country string, limit int) []App {
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("entity", "software")
	params.Set("country", country)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.Get(ctx, c.cfg.SearchURL, params, nil)
	if err != nil {
		return nil
	}

	var decoded struct {
		Results []App `json:"results"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.log.Warn().Err(err).Str("term", term).Msg("malformed search response")
		return nil
	}
	return decoded.Results
}
