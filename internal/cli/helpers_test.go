package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/agisilaos/macsearch/internal/model"
)

var catalogApps = []model.SearchResult{
	{
		TrackID:                   409183694,
		TrackName:                 "Keynote",
		Version:                   "13.1",
		Price:                     0,
		FormattedPrice:            "Free",
		Currency:                  "USD",
		BundleID:                  "com.apple.iWork.Keynote",
		SellerName:                "Apple",
		SellerURL:                 "https://www.apple.com/keynote/",
		TrackViewURL:              "https://apps.apple.com/us/app/keynote/id409183694?mt=12",
		CurrentVersionReleaseDate: "2024-03-28T16:04:05Z",
		MinimumOSVersion:          "13.5",
		FileSizeBytes:             "123456789",
	},
	{
		TrackID:        497799835,
		TrackName:      "Xcode",
		Version:        "15.3",
		FormattedPrice: "Free",
		SellerName:     "Apple",
		TrackViewURL:   "https://apps.apple.com/us/app/xcode/id497799835?mt=12",
	},
	{
		TrackID:        1091189122,
		TrackName:      "Bear Markdown Notes",
		Version:        "2.2",
		Price:          2.99,
		FormattedPrice: "$2.99",
		SellerName:     "Shiny Frog Ltd.",
		TrackViewURL:   "https://apps.apple.com/us/app/bear/id1091189122?mt=12",
	},
}

// newCatalogServer serves /search and /lookup from catalogApps.
func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := []model.SearchResult{}
		switch r.URL.Path {
		case "/search":
			term := strings.ToLower(r.URL.Query().Get("term"))
			for _, app := range catalogApps {
				if strings.Contains(strings.ToLower(app.TrackName), term) {
					results = append(results, app)
				}
			}
		case "/lookup":
			id, _ := strconv.Atoi(r.URL.Query().Get("id"))
			for _, app := range catalogApps {
				if app.TrackID == id {
					results = append(results, app)
				}
			}
		default:
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.SearchResponse{ResultCount: len(results), Results: results})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// useCatalog isolates config and points the CLI at srv.
func useCatalog(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MACSEARCH_BASE_URL", baseURL)
}

func newFailingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newStallingServer answers only after delay, or gives up when the client
// cancels the request.
func newStallingServer(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func captureStdoutStderr(t *testing.T, fn func() error) (string, string, error) {
	t.Helper()

	oldOut := os.Stdout
	oldErr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("create stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("create stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	runErr := fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldOut
	os.Stderr = oldErr

	bOut, _ := io.ReadAll(rOut)
	bErr, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return string(bOut), string(bErr), runErr
}

func captureStdoutForRun(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	out, _, err := captureStdoutStderr(t, fn)
	return out, err
}

func runCLIWithCapture(t *testing.T, app App, args []string) (stdout string, stderr string, code int, errText string) {
	t.Helper()
	stdout, stderr, err := captureStdoutStderr(t, func() error {
		return app.Run(args)
	})
	if err != nil {
		errText = err.Error()
	}
	return stdout, stderr, ExitCode(err), errText
}
