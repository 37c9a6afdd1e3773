package itunes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"howett.net/plist"
)

type hintsFixture struct {
	Hints []hintEntry `plist:"hints"`
}

type hintEntry struct {
	Term string `plist:"term"`
}

func encodeHints(t *testing.T, terms ...string) []byte {
	t.Helper()
	fix := hintsFixture{}
	for _, term := range terms {
		fix.Hints = append(fix.Hints, hintEntry{Term: term})
	}
	body, err := plist.Marshal(fix, plist.BinaryFormat)
	if err != nil {
		t.Fatalf("failed to encode hints fixture: %v", err)
	}
	return body
}

func TestSuggestionsBuildsRequestAndDecodes(t *testing.T) {
	var (
		gotTerm       string
		gotClient     string
		gotStoreFront string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotClient = r.URL.Query().Get("clientApplication")
		gotStoreFront = r.Header.Get("X-Apple-Store-Front")
		w.Write(encodeHints(t, "virtual pet", "virtual pet game", "virtual pets"))
	}))
	defer srv.Close()

	c := newTestClient(testConfig(srv.URL))
	terms := c.Suggestions(context.Background(), "virtual pet")

	if gotTerm != "virtual pet" {
		t.Errorf("term param = %q", gotTerm)
	}
	if gotClient != "Software" {
		t.Errorf("clientApplication param = %q, want Software", gotClient)
	}
	if gotStoreFront != storeFrontUS {
		t.Errorf("storefront header = %q, want %q", gotStoreFront, storeFrontUS)
	}

	want := []string{"virtual pet", "virtual pet game", "virtual pets"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("suggestions = %v, want %v", terms, want)
	}
}

func TestSuggestionsSkipsEmptyTerms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(encodeHints(t, "virtual pet", "", "virtual pets"))
	}))
	defer srv.Close()

	c := newTestClient(testConfig(srv.URL))
	terms := c.Suggestions(context.Background(), "virtual pet")

	want := []string{"virtual pet", "virtual pets"}
	if !reflect.DeepEqual(terms, want) {
		t.Errorf("suggestions = %v, want %v", terms, want)
	}
}

func TestSuggestionsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not a property list"))
	}))
	defer srv.Close()

	c := newTestClient(testConfig(srv.URL))
	if terms := c.Suggestions(context.Background(), "pet"); terms != nil {
		t.Errorf("malformed body yielded %v, want none", terms)
	}
}

func TestSuggestionsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxAttempts = 1
	c := newTestClient(cfg)

	if terms := c.Suggestions(context.Background(), "pet"); terms != nil {
		t.Errorf("failed request yielded %v, want none", terms)
	}
}

func TestDecodeHintsEmptyList(t *testing.T) {
	terms, err := decodeHints(encodeHints(t))
	if err != nil {
		t.Fatalf("decodeHints() error: %v", err)
	}
	if len(terms) != 0 {
		t.Errorf("terms = %v, want empty", terms)
	}
}
