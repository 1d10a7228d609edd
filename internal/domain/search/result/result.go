// Package result holds typed search-engine hits at the storage boundary.
package result

import "github.com/sevahub/panditseva/internal/domain/pandit"

// Hit is one scored document from the search engine.
type Hit struct {
	Document pandit.Document
	Score    float64
}

// Page is one page of hits plus the full pre-LIMIT match count.
type Page struct {
	Total int
	Hits  []Hit
}
