package storesearch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agisilaos/macsearch/internal/model"
)

// ErrAbandoned is returned by the Context variants when the wait ends before
// the provider completes. The provider call is still outstanding.
var ErrAbandoned = errors.New("catalog request abandoned before completion")

// Client adds blocking Lookup and Search calls on top of any StoreSearch.
type Client struct {
	search StoreSearch
	logger *zerolog.Logger
}

// New wraps search. A nil logger discards log output.
func New(search StoreSearch, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{search: search, logger: logger}
}

// Lookup returns the app with the given identifier, or nil if none matched.
// Errors delivered by the provider are returned unchanged. Lookup blocks until
// the provider completes.
func (c *Client) Lookup(appID int) (*model.SearchResult, error) {
	return c.LookupContext(context.Background(), appID)
}

// Search returns the apps matching appName. The slice is empty, never nil,
// when nothing matched.
func (c *Client) Search(appName string) ([]model.SearchResult, error) {
	return c.SearchContext(context.Background(), appName)
}

// LookupContext is Lookup with the wait bounded by ctx. When ctx ends first
// the returned error matches both ErrAbandoned and ctx.Err(), and the late
// completion is discarded.
func (c *Client) LookupContext(ctx context.Context, appID int) (*model.SearchResult, error) {
	logger := c.logger.With().Str("operation", "lookup").Int("app_id", appID).Logger()
	return await(ctx, &logger, func(done func(*model.SearchResult, error)) {
		c.search.LookupAsync(appID, done)
	})
}

// SearchContext is Search with the wait bounded by ctx.
func (c *Client) SearchContext(ctx context.Context, appName string) ([]model.SearchResult, error) {
	logger := c.logger.With().Str("operation", "search").Str("term", appName).Logger()
	results, err := await(ctx, &logger, func(done func([]model.SearchResult, error)) {
		c.search.SearchAsync(appName, done)
	})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.SearchResult{}
	}
	return results, nil
}

type outcome[T any] struct {
	value T
	err   error
}

// await starts one asynchronous call and parks until its first completion.
// Every call owns its channel and once guard, so concurrent calls share
// nothing. Completions after the first are dropped and logged.
func await[T any](ctx context.Context, logger *zerolog.Logger, start func(done func(T, error))) (T, error) {
	signal := make(chan outcome[T], 1)
	var once sync.Once

	start(func(value T, err error) {
		delivered := false
		once.Do(func() {
			delivered = true
			signal <- outcome[T]{value: value, err: err}
		})
		if !delivered {
			logger.Warn().Msg("provider invoked completion more than once, ignoring")
		}
	})

	select {
	case out := <-signal:
		if out.err != nil {
			var zero T
			return zero, out.err
		}
		return out.value, nil
	case <-ctx.Done():
		logger.Debug().Err(ctx.Err()).Msg("stopped waiting for provider completion")
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrAbandoned, ctx.Err())
	}
}
