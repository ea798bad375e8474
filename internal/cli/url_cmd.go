package cli

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/agisilaos/macsearch/internal/config"
	"github.com/agisilaos/macsearch/internal/storesearch"
)

const urlUsage = "usage: macsearch url search <app name> | macsearch url lookup <app id>"

func (a App) cmdURL(g globalFlags, args []string) error {
	if len(args) < 2 {
		return newUsageError("url", urlUsage)
	}
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	e := storesearch.Endpoints{BaseURL: cfg.BaseURL}

	var (
		kind = args[0]
		link *url.URL
		ok   bool
	)
	switch kind {
	case "search":
		term := strings.Join(args[1:], " ")
		link, ok = e.SearchURL(term)
		if !ok {
			return newUsageError("url", "cannot build a search url for %q", term)
		}
	case "lookup":
		if len(args) != 2 {
			return newUsageError("url", urlUsage)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return newUsageError("url", "invalid app id %q: expected a number", args[1])
		}
		link, ok = e.LookupURL(id)
		if !ok {
			return newUsageError("url", "cannot build a lookup url for id %d", id)
		}
	default:
		return newUsageError("url", "unknown url kind %q (use search or lookup)", kind)
	}

	switch {
	case g.JSON:
		return writeJSON(map[string]string{"kind": kind, "url": link.String()})
	case g.Plain:
		writePlainKV("kind", kind, "url", link.String())
	default:
		fmt.Println(link.String())
	}
	return nil
}
