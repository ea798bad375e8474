package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agisilaos/macsearch/internal/model"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

const DefaultUserAgent = "macsearch"

type ITunesOptions struct {
	BaseURL   string
	Client    *http.Client
	Timeout   time.Duration
	Workers   int
	UserAgent string
	Logger    *zerolog.Logger
}

// ITunesProvider queries the iTunes Search API. Requests run on a bounded
// worker pool and report through the completion on the worker goroutine.
type ITunesProvider struct {
	endpoints storesearch.Endpoints
	client    *http.Client
	userAgent string
	logger    *zerolog.Logger
	pool      pond.Pool

	// ctx scopes every outgoing request; Shutdown cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

var _ storesearch.StoreSearch = (*ITunesProvider)(nil)

func NewITunesProvider(opts ITunesOptions) *ITunesProvider {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: resolvedTimeout(opts.Timeout)}
	}
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ITunesProvider{
		ctx:       ctx,
		cancel:    cancel,
		endpoints: storesearch.Endpoints{BaseURL: opts.BaseURL},
		client:    client,
		userAgent: firstOr(opts.UserAgent, DefaultUserAgent),
		logger:    logger,
		pool:      pond.NewPool(resolvedWorkers(opts.Workers)),
	}
}

func (p *ITunesProvider) LookupAsync(appID int, done storesearch.LookupCompletion) {
	logger := p.logger.With().Str("operation", "lookup").Int("app_id", appID).Logger()
	endpoint, ok := p.endpoints.LookupURL(appID)
	if !ok {
		done(nil, fmt.Errorf("%w: lookup %d", ErrInvalidQuery, appID))
		return
	}
	p.dispatch(&logger, func() {
		resp, err := p.fetch(&logger, endpoint.String())
		if err != nil {
			done(nil, err)
			return
		}
		if len(resp.Results) == 0 {
			done(nil, nil)
			return
		}
		result := resp.Results[0]
		done(&result, nil)
	}, func(err error) {
		done(nil, err)
	})
}

func (p *ITunesProvider) SearchAsync(appName string, done storesearch.SearchCompletion) {
	logger := p.logger.With().Str("operation", "search").Str("term", appName).Logger()
	endpoint, ok := p.endpoints.SearchURL(appName)
	if !ok {
		done(nil, fmt.Errorf("%w: search %q", ErrInvalidQuery, appName))
		return
	}
	p.dispatch(&logger, func() {
		resp, err := p.fetch(&logger, endpoint.String())
		if err != nil {
			done(nil, err)
			return
		}
		results := resp.Results
		if results == nil {
			results = []model.SearchResult{}
		}
		done(results, nil)
	}, func(err error) {
		done(nil, err)
	})
}

// Close waits for in-flight requests to complete. Calls made afterwards
// complete immediately with ErrClosed.
func (p *ITunesProvider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.pool.StopAndWait()
	p.cancel()
}

// Shutdown cancels in-flight requests and returns without waiting for them.
// Their completions still fire, with ErrClosed. Calls made afterwards
// complete immediately with ErrClosed.
func (p *ITunesProvider) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.cancel()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	p.pool.Stop()
}

func (p *ITunesProvider) dispatch(logger *zerolog.Logger, run func(), fail func(error)) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		fail(ErrClosed)
		return
	}
	p.pool.Submit(run)
	p.mu.RUnlock()
	logger.Debug().Msg("Submitted catalog request")
}

func (p *ITunesProvider) fetch(logger *zerolog.Logger, endpoint string) (model.SearchResponse, error) {
	requestLogger := logger.With().Str("request_id", uuid.NewString()).Logger()
	started := time.Now()

	var payload model.SearchResponse
	req, err := http.NewRequestWithContext(p.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payload, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		requestLogger.Debug().Err(err).Msg("Catalog request failed")
		if p.ctx.Err() != nil {
			return payload, fmt.Errorf("%w: %v", ErrClosed, err)
		}
		if isNetworkTransient(err) {
			return payload, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return payload, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	requestLogger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("Catalog request completed")

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(body))
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return payload, fmt.Errorf("%w: catalog request failed: %s: %s", ErrRateLimited, resp.Status, msg)
		case resp.StatusCode >= 500:
			return payload, fmt.Errorf("%w: catalog request failed: %s: %s", ErrTransient, resp.Status, msg)
		default:
			return payload, fmt.Errorf("catalog request failed: %s: %s", resp.Status, msg)
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if p.ctx.Err() != nil {
			return payload, fmt.Errorf("%w: %v", ErrClosed, err)
		}
		return payload, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return payload, nil
}

func resolvedTimeout(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return 20 * time.Second
}

func resolvedWorkers(n int) int {
	if n > 0 {
		return n
	}
	return 4
}

func firstOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
