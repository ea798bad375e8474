package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agisilaos/macsearch/internal/config"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

var (
	errBaseURLUnusable = errors.New("base url unusable")
	errWaitUnbounded   = errors.New("wait timeout unbounded")
)

// probeAppName exercises percent-encoding of spaces and reserved characters.
const probeAppName = "Keynote & Pages"

func validateEndpointsRuntime(cfg config.Config) error {
	e := storesearch.Endpoints{BaseURL: cfg.BaseURL}
	if _, ok := e.SearchURL(probeAppName); !ok {
		return fmt.Errorf("%w: cannot build search url from %q", errBaseURLUnusable, cfg.BaseURL)
	}
	if _, ok := e.LookupURL(1); !ok {
		return fmt.Errorf("%w: cannot build lookup url from %q", errBaseURLUnusable, cfg.BaseURL)
	}
	return nil
}

func isSecureBaseURL(raw string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "https://")
}

func validateWaitRuntime(cfg config.Config) error {
	if cfg.WaitTimeoutSec <= 0 {
		return fmt.Errorf("%w: a catalog that never answers blocks commands until the http timeout (%ds)", errWaitUnbounded, cfg.TimeoutSec)
	}
	return nil
}
