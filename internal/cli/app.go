package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agisilaos/macsearch/internal/config"
	"github.com/agisilaos/macsearch/internal/logging"
	"github.com/agisilaos/macsearch/internal/provider"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

type App struct {
	Version string
}

type globalFlags struct {
	JSON    bool
	Plain   bool
	Quiet   bool
	Verbose bool
	Timeout string
	Help    bool
	Version bool
}

var commandNames = []string{"search", "lookup", "info", "home", "vendor", "url", "config", "doctor", "completion", "help", "version"}

func NewApp(version string) App {
	return App{Version: version}
}

func (a App) Run(args []string) error {
	g, rest, err := parseGlobal(args)
	if err != nil {
		return err
	}
	if g.Help {
		return a.help(rest)
	}
	if g.Version {
		fmt.Println(a.Version)
		return nil
	}
	if len(rest) == 0 {
		return a.help(nil)
	}
	cmd := rest[0]
	argv := rest[1:]

	switch cmd {
	case "help":
		return a.help(argv)
	case "version":
		fmt.Println(a.Version)
		return nil
	case "search":
		return a.cmdSearch(g, argv)
	case "lookup", "info":
		return a.cmdLookup(g, argv)
	case "home":
		return a.cmdHome(g, argv)
	case "vendor":
		return a.cmdVendor(g, argv)
	case "url":
		return a.cmdURL(g, argv)
	case "config":
		return a.cmdConfig(g, argv)
	case "doctor":
		return a.cmdDoctor(g, argv)
	case "completion":
		return a.cmdCompletion(g, argv)
	default:
		hints := []string{}
		if s := suggestClosest(cmd, commandNames); s != "" {
			hints = append(hints, "macsearch "+s)
		}
		hints = append(hints, "macsearch --help")
		return ExitError{Code: ExitInvalidUsage, Err: fmt.Errorf("unknown command %q", cmd), Hints: hints}
	}
}

// parseGlobal pulls global flags from any position. Everything else is
// returned in order for the command to parse.
func parseGlobal(args []string) (globalFlags, []string, error) {
	var g globalFlags
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			rest = append(rest, args[i:]...)
			return g, rest, nil
		case a == "-h" || a == "--help":
			g.Help = true
		case a == "--version":
			g.Version = true
		case a == "--json":
			g.JSON = true
		case a == "--plain":
			g.Plain = true
		case a == "-q" || a == "--quiet":
			g.Quiet = true
		case a == "-v" || a == "--verbose":
			g.Verbose = true
		case a == "--timeout":
			if i+1 >= len(args) {
				return g, nil, newExitError(ExitInvalidUsage, "--timeout requires a value")
			}
			g.Timeout = args[i+1]
			i++
		case strings.HasPrefix(a, "--timeout="):
			g.Timeout = strings.TrimPrefix(a, "--timeout=")
		default:
			rest = append(rest, a)
		}
	}
	if g.Timeout != "" {
		d, err := time.ParseDuration(g.Timeout)
		if err != nil || d <= 0 {
			return g, nil, newExitError(ExitInvalidUsage, "--timeout must be a positive duration such as 10s, got %q", g.Timeout)
		}
	}
	if g.JSON && g.Plain {
		return g, nil, newExitError(ExitInvalidUsage, "--json and --plain are mutually exclusive")
	}
	return g, rest, nil
}

// session wires one command invocation: configuration, logger, the iTunes
// provider and the blocking client on top of it.
type session struct {
	cfg      config.Config
	logger   *zerolog.Logger
	provider *provider.ITunesProvider
	client   *storesearch.Client
	wait     time.Duration

	abandoned atomic.Bool
}

func (a App) openSession(g globalFlags) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, wrapExitError(ExitGenericFailure, err)
	}
	switch {
	case g.Verbose:
		cfg.Level = logging.LevelDebug
	case g.Quiet:
		cfg.Level = logging.LevelError
	}
	logger, err := logging.NewLogger(cfg.Config, os.Stderr)
	if err != nil {
		return nil, wrapExitError(ExitGenericFailure, err)
	}
	p := provider.NewITunesProvider(provider.ITunesOptions{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout(),
		Workers:   cfg.Workers,
		UserAgent: provider.DefaultUserAgent + "/" + a.Version,
		Logger:    logger,
	})
	wait := cfg.WaitTimeout()
	if g.Timeout != "" {
		wait, _ = time.ParseDuration(g.Timeout)
	}
	logger.Debug().Str("base_url", cfg.BaseURL).Dur("wait", wait).Int("workers", cfg.Workers).Msg("Session ready")
	return &session{
		cfg:      cfg,
		logger:   logger,
		provider: p,
		client:   storesearch.New(p, logger),
		wait:     wait,
	}, nil
}

// waitContext bounds how long a blocking call waits. Zero means no bound.
func (s *session) waitContext() (context.Context, context.CancelFunc) {
	if s.wait > 0 {
		return context.WithTimeout(context.Background(), s.wait)
	}
	return context.WithCancel(context.Background())
}

// track records whether err gave up on an outstanding catalog call.
func (s *session) track(err error) error {
	if errors.Is(err, storesearch.ErrAbandoned) {
		s.abandoned.Store(true)
	}
	return err
}

// Close drains in-flight requests, unless a wait was abandoned: then the
// outstanding requests are cancelled so the command returns on time.
func (s *session) Close() {
	if s.abandoned.Load() {
		s.logger.Debug().Msg("Cancelling abandoned catalog requests")
		s.provider.Shutdown()
		return
	}
	s.provider.Close()
}
