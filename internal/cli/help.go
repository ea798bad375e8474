package cli

import (
	"fmt"
	"strings"
)

func (a App) help(args []string) error {
	fmt.Print(helpText(args))
	return nil
}

func helpText(args []string) string {
	if len(args) == 0 {
		return usageText()
	}
	switch strings.ToLower(args[0]) {
	case "search":
		return searchHelpText()
	case "lookup", "info":
		return lookupHelpText()
	case "home", "vendor":
		return linkHelpText()
	case "url":
		return urlHelpText()
	case "config":
		return configHelpText()
	case "doctor":
		return doctorHelpText()
	default:
		return usageText()
	}
}

func usageText() string {
	return `macsearch - Search the Mac App Store catalog

USAGE:
  macsearch [global flags] <command> [args]

COMMANDS:
  search             Search Mac apps by name
  lookup, info       Show details for one or more app ids
  home               Print the store page of an app
  vendor             Print the developer website of an app
  url search/lookup  Print the catalog request URL without fetching it
  config get/set     Read/write config values
  doctor             Run preflight checks
  completion         Generate shell completion
  version            Show version

GLOBAL FLAGS:
  --json             JSON output
  --plain            Stable plain output
  -q, --quiet        Only log errors
  -v, --verbose      Extra diagnostics to stderr
  --timeout DUR      Give up waiting for the catalog after DUR (e.g. 10s)
  --version          Print version
  -h, --help         Show help

EXIT CODES:
  0 success, 1 failure, 2 invalid usage, 4 catalog failure, 5 no matches
`
}

func searchHelpText() string {
	return `macsearch search - Search Mac apps by name

USAGE:
  macsearch search [--price] <app name> [global flags]

OUTPUT:
  - human: one "id  name  (version)" row per app, price appended with --price
  - --plain: tab separated id, name, version, price
  - --json: array of catalog records, [] when nothing matches

Exits 5 when no app matches.
`
}

func lookupHelpText() string {
	return `macsearch lookup - Show details for apps by id

USAGE:
  macsearch lookup <app id>... [global flags]
  macsearch info <app id>... [global flags]

Ids are looked up concurrently. Exits 5 when any id has no app.
`
}

func linkHelpText() string {
	return `macsearch home|vendor - Print an app link

USAGE:
  macsearch home <app id>      store page of the app
  macsearch vendor <app id>    developer website of the app

Exits 5 when the app or the link does not exist.
`
}

func urlHelpText() string {
	return `macsearch url - Print catalog request URLs

USAGE:
  macsearch url search <app name>
  macsearch url lookup <app id>

The URL is built against base_url and no request is made.
`
}

func configHelpText() string {
	return `macsearch config - Read or write config values

USAGE:
  macsearch config get <key>
  macsearch config set <key> <value>

KEYS:
  base_url, timeout_seconds, workers, wait_timeout_seconds, log_level, log_format
`
}

func doctorHelpText() string {
	return `macsearch doctor - Run preflight checks

USAGE:
  macsearch doctor [--strict] [global flags]

CHECKS:
  - config file loads and validates
  - base_url produces catalog URLs
  - config path writability
  - wait timeout is bounded

BEHAVIOR:
  - default: warnings do not fail command
  - --strict: warnings are treated as failures
`
}
