package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/blackwell-systems/asoscope/internal/itunes"
	"github.com/blackwell-systems/asoscope/internal/keywords"
)

// newClient builds the iTunes client from the environment config, wiring
// the response cache when --cache is set. The returned cleanup must be
// called when the client is no longer needed.
func newClient() (*itunes.Client, func(), error) {
	cfg, err := itunes.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	client := itunes.NewClient(cfg, log.Logger)
	cleanup := func() {}

	if cacheEnabled {
		path, err := getCachePath()
		if err != nil {
			return nil, nil, err
		}
		cache, err := itunes.NewCache(path)
		if err != nil {
			return nil, nil, err
		}
		client.WithCache(cache, cacheTTL)
		cleanup = func() { cache.Close() }
	}

	return client, cleanup, nil
}

// collectKeywords merges positional keywords with the optional list file
// and dedupes case-insensitively, preserving input order.
func collectKeywords(args []string, file string) ([]string, error) {
	list := append([]string(nil), args...)
	if file != "" {
		fromFile, err := keywords.Load(file)
		if err != nil {
			return nil, err
		}
		list = append(list, fromFile...)
	}

	list = keywords.Dedupe(list)
	if len(list) == 0 {
		return nil, fmt.Errorf("provide keywords as arguments or via -f/--file")
	}
	return list, nil
}

// validateCountry checks the two-letter storefront country code format.
// This is a caller-contract error, unlike upstream data problems which
// always degrade to empty results.
func validateCountry(country string) error {
	if len(country) != 2 {
		return fmt.Errorf("invalid country code %q: must be a two-letter code like \"us\"", country)
	}
	for _, r := range country {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("invalid country code %q: must be a two-letter code like \"us\"", country)
		}
	}
	return nil
}
