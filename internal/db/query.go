package db

import "github.com/sevahub/panditseva/internal/domain/search/filter"

// SortOrder direction for SORTBY clauses.
type SortOrder string

const (
	// SortAsc sorts ascending.
	SortAsc SortOrder = "ASC"
	// SortDesc sorts descending.
	SortDesc SortOrder = "DESC"
)

// Sort is a single-field SORTBY clause. The field must be SORTABLE in the index.
type Sort struct {
	Field string
	Order SortOrder
}

// TextMatch is the scoring text part of an FT.SEARCH query.
type TextMatch struct {
	Fields []string // fields to match against
	Query  string   // raw user text, escaped by the store
	Fuzzy  bool     // wrap each term in fuzzy markers (%term%)
	Prefix bool     // suffix the final term with * for prefix-phrase matching
}

// SearchQuery is the input for a filtered, optionally scored FT.SEARCH.
// With no text match and no filters the query degenerates to match-all.
type SearchQuery struct {
	IndexName    string
	Text         *TextMatch
	Filters      filter.Expression
	SortBy       *Sort
	Offset       int
	Limit        int
	ReturnFields []string
	WithScores   bool
}

// SearchResult is the output of a search operation.
// Total is the full match count before LIMIT, for pagination.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
