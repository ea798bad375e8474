package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (a App) cmdSearch(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	showPrice := fs.Bool("price", false, "Show app prices")
	if err := fs.Parse(args); err != nil {
		return newUsageError("search", "%v", err)
	}
	term := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if term == "" {
		return newUsageError("search", "usage: macsearch search [--price] <app name>")
	}

	s, err := a.openSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := s.waitContext()
	defer cancel()
	results, err := s.client.SearchContext(ctx, term)
	if err != nil {
		return wrapProviderError(s.track(err))
	}
	s.logger.Debug().Str("term", term).Int("results", len(results)).Msg("Search finished")

	if g.JSON {
		if err := writeJSON(results); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	}
	if len(results) == 0 {
		return newExitError(ExitNoMatches, "no results found for %q", term)
	}
	switch {
	case g.JSON:
	case g.Plain:
		for _, r := range results {
			writePlainTableRow(strconv.Itoa(r.TrackID), r.TrackName, r.Version, formatPrice(r))
		}
	default:
		for _, row := range formatSearchRows(results, *showPrice) {
			fmt.Println(row)
		}
	}
	return nil
}
