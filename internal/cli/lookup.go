package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agisilaos/macsearch/internal/model"
)

func parseAppIDs(command string, args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, newUsageError(command, "usage: macsearch %s <app id>...", command)
	}
	ids := make([]int, 0, len(args))
	for _, raw := range args {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, newUsageError(command, "invalid app id %q: expected a number", raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// lookupAll runs one blocking lookup per id concurrently. The returned slice
// is aligned with ids; nil entries had no match.
func (s *session) lookupAll(ctx context.Context, ids []int) ([]*model.SearchResult, error) {
	results := make([]*model.SearchResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, id := range ids {
		g.Go(func() error {
			r, err := s.client.LookupContext(gctx, id)
			if err != nil {
				return fmt.Errorf("lookup %d: %w", id, s.track(err))
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a App) cmdLookup(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return newUsageError("lookup", "%v", err)
	}
	ids, err := parseAppIDs("lookup", fs.Args())
	if err != nil {
		return err
	}

	s, err := a.openSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := s.waitContext()
	defer cancel()
	results, err := s.lookupAll(ctx, ids)
	if err != nil {
		return wrapProviderError(err)
	}

	found := make([]model.SearchResult, 0, len(results))
	missing := []int{}
	for i, r := range results {
		if r == nil {
			missing = append(missing, ids[i])
			continue
		}
		found = append(found, *r)
	}

	switch {
	case g.JSON:
		if err := writeJSON(found); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	case g.Plain:
		for _, r := range found {
			writePlainTableRow(strconv.Itoa(r.TrackID), r.TrackName, r.Version, formatPrice(r), r.TrackViewURL)
		}
	default:
		for i, r := range found {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(formatAppInfo(r))
		}
	}
	if len(missing) > 0 {
		return newExitError(ExitNoMatches, "no app found with id %s", joinInts(missing))
	}
	return nil
}

func (a App) cmdHome(g globalFlags, args []string) error {
	return a.cmdAppLink(g, "home", args, func(r model.SearchResult) string { return r.TrackViewURL })
}

func (a App) cmdVendor(g globalFlags, args []string) error {
	return a.cmdAppLink(g, "vendor", args, func(r model.SearchResult) string { return r.SellerURL })
}

// cmdAppLink prints one URL field of a single app.
func (a App) cmdAppLink(g globalFlags, command string, args []string, pick func(model.SearchResult) string) error {
	ids, err := parseAppIDs(command, args)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return newUsageError(command, "usage: macsearch %s <app id>", command)
	}
	id := ids[0]

	s, err := a.openSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := s.waitContext()
	defer cancel()
	r, err := s.client.LookupContext(ctx, id)
	if err != nil {
		return wrapProviderError(s.track(err))
	}
	if r == nil {
		return newExitError(ExitNoMatches, "no app found with id %d", id)
	}
	link := pick(*r)
	if link == "" {
		return newExitError(ExitNoMatches, "app %d has no %s url", id, command)
	}
	switch {
	case g.JSON:
		return writeJSON(map[string]any{"app_id": id, "url": link})
	case g.Plain:
		writePlainKV("app_id", strconv.Itoa(id), "url", link)
	default:
		fmt.Println(link)
	}
	return nil
}

func joinInts(ids []int) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.Itoa(id))
	}
	return strings.Join(out, ", ")
}
