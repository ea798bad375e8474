// Package storesearch adapts asynchronous Mac App Store catalog providers to
// blocking calls and builds the catalog endpoint URLs.
package storesearch

import "github.com/agisilaos/macsearch/internal/model"

// LookupCompletion receives the outcome of a lookup. A nil result with a nil
// error means no app matched the identifier.
type LookupCompletion func(result *model.SearchResult, err error)

// SearchCompletion receives the outcome of a search. On success results may
// be empty.
type SearchCompletion func(results []model.SearchResult, err error)

// StoreSearch is the capability a catalog provider must implement.
//
// Implementations must invoke the completion exactly once per call, from any
// goroutine, carrying either a result or a non-nil error.
type StoreSearch interface {
	LookupAsync(appID int, done LookupCompletion)
	SearchAsync(appName string, done SearchCompletion)
}
