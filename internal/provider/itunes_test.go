package provider

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agisilaos/macsearch/internal/model"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

const keynoteLookupJSON = `{"resultCount":1,"results":[{"trackId":409183694,"trackName":"Keynote","version":"14.2","price":0,"formattedPrice":"Free","sellerName":"Apple Inc.","trackViewUrl":"https://apps.apple.com/us/app/keynote/id409183694?mt=12"}]}`

func newTestProvider(t *testing.T, srv *httptest.Server) *ITunesProvider {
	t.Helper()
	p := NewITunesProvider(ITunesOptions{
		BaseURL: srv.URL,
		Client:  &http.Client{Timeout: 2 * time.Second},
		Workers: 2,
	})
	t.Cleanup(p.Close)
	return p
}

func TestLookupDecodesFirstResult(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(keynoteLookupJSON))
	}))
	defer srv.Close()

	res, err := storesearch.New(newTestProvider(t, srv), nil).Lookup(409183694)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "Keynote", res.TrackName)
	assert.Equal(t, "/lookup", gotPath)
	assert.Equal(t, "id=409183694", gotQuery)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestLookupWithoutResultsDeliversNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer srv.Close()

	res, err := storesearch.New(newTestProvider(t, srv), nil).Lookup(1)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestSearchSendsEncodedTerm(t *testing.T) {
	var gotTerm, gotRaw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotRaw = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"resultCount":2,"results":[{"trackId":1,"trackName":"Tom & Jerry"},{"trackId":2,"trackName":"Tom & Jerry 2"}]}`))
	}))
	defer srv.Close()

	res, err := storesearch.New(newTestProvider(t, srv), nil).Search("Tom & Jerry")
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, "Tom & Jerry", gotTerm)
	assert.Equal(t, "media=software&entity=macSoftware&term=Tom%20%26%20Jerry", gotRaw)
}

func TestSearchWithoutResultsDeliversEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":0}`))
	}))
	defer srv.Close()

	var got []model.SearchResult
	var gotErr error
	done := make(chan struct{})
	newTestProvider(t, srv).SearchAsync("zzzznonexistentapp", func(results []model.SearchResult, err error) {
		got, gotErr = results, err
		close(done)
	})
	<-done
	require.NoError(t, gotErr)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("try later"))
	}))
	defer srv.Close()

	_, err := storesearch.New(newTestProvider(t, srv), nil).Search("x")
	assert.ErrorIs(t, err, ErrTransient)
	assert.Contains(t, err.Error(), "try later")
}

func TestTooManyRequestsIsRateLimitedAndNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := storesearch.New(newTestProvider(t, srv), nil).Lookup(1)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientErrorIsNotClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := storesearch.New(newTestProvider(t, srv), nil).Lookup(1)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTransient))
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.Contains(t, err.Error(), "400")
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":`))
	}))
	defer srv.Close()

	_, err := storesearch.New(newTestProvider(t, srv), nil).Search("x")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer srv.Close()

	p := NewITunesProvider(ITunesOptions{BaseURL: srv.URL, Client: &http.Client{Timeout: 20 * time.Millisecond}})
	defer p.Close()
	_, err := storesearch.New(p, nil).Lookup(1)
	assert.ErrorIs(t, err, ErrTransient)
}

func TestInvalidSearchTermCompletesWithInvalidQuery(t *testing.T) {
	p := NewITunesProvider(ITunesOptions{BaseURL: "http://127.0.0.1:1"})
	defer p.Close()
	_, err := storesearch.New(p, nil).Search("bad\xff")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestCallsAfterCloseCompleteWithErrClosed(t *testing.T) {
	p := NewITunesProvider(ITunesOptions{BaseURL: "http://127.0.0.1:1"})
	p.Close()
	p.Close()

	var calls int32
	p.LookupAsync(1, func(r *model.SearchResult, err error) {
		atomic.AddInt32(&calls, 1)
		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrClosed)
	})
	p.SearchAsync("x", func(r []model.SearchResult, err error) {
		atomic.AddInt32(&calls, 1)
		assert.ErrorIs(t, err, ErrClosed)
	})
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestEveryCallCompletesExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "13" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(keynoteLookupJSON))
	}))
	defer srv.Close()

	p := NewITunesProvider(ITunesOptions{BaseURL: srv.URL, Workers: 3})
	var mu sync.Mutex
	counts := map[int]int{}
	var wg sync.WaitGroup
	for id := 0; id < 20; id++ {
		wg.Add(1)
		p.LookupAsync(id, func(r *model.SearchResult, err error) {
			defer wg.Done()
			mu.Lock()
			counts[id]++
			mu.Unlock()
		})
	}
	wg.Wait()
	p.Close()

	for id := 0; id < 20; id++ {
		assert.Equal(t, 1, counts[id], "app id %d", id)
	}
}

func TestShutdownCancelsInFlightRequest(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewITunesProvider(ITunesOptions{BaseURL: srv.URL, Client: &http.Client{Timeout: 10 * time.Second}})
	got := make(chan error, 1)
	p.LookupAsync(1, func(r *model.SearchResult, err error) {
		got <- err
	})

	time.Sleep(50 * time.Millisecond)
	started := time.Now()
	p.Shutdown()
	assert.Less(t, time.Since(started), time.Second)

	select {
	case err := <-got:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight lookup did not complete after Shutdown")
	}

	var afterErr error
	p.SearchAsync("x", func(r []model.SearchResult, err error) { afterErr = err })
	assert.ErrorIs(t, afterErr, ErrClosed)
	p.Close()
}
