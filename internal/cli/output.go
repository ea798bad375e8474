package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/agisilaos/macsearch/internal/model"
)

func writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func writePlainKV(pairs ...string) {
	if len(pairs)%2 != 0 {
		fmt.Println(strings.Join(pairs, "\t"))
		return
	}
	out := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, fmt.Sprintf("%s=%s", pairs[i], pairs[i+1]))
	}
	fmt.Println(strings.Join(out, "\t"))
}

func writePlainTableHeader(cols ...string) {
	fmt.Println(strings.Join(cols, "\t"))
}

func writePlainTableRow(cols ...string) {
	fmt.Println(strings.Join(cols, "\t"))
}

// formatSearchRows renders results as aligned "id  name  (version)" rows.
func formatSearchRows(results []model.SearchResult, withPrice bool) []string {
	width := 0
	for _, r := range results {
		if n := utf8.RuneCountInString(r.TrackName); n > width {
			width = n
		}
	}
	rows := make([]string, 0, len(results))
	for _, r := range results {
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(r.TrackName))
		row := fmt.Sprintf("%12d  %s%s  (%s)", r.TrackID, r.TrackName, pad, r.Version)
		if withPrice {
			row += "  " + formatPrice(r)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatAppInfo(r model.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [%s]\n", r.TrackName, r.Version, formatPrice(r))
	fmt.Fprintf(&b, "By: %s\n", firstOr(r.SellerName, "unknown"))
	if released := formatDate(firstOr(r.CurrentVersionReleaseDate, r.ReleaseDate)); released != "" {
		fmt.Fprintf(&b, "Released: %s\n", released)
	}
	if r.MinimumOSVersion != "" {
		fmt.Fprintf(&b, "Minimum OS: %s\n", r.MinimumOSVersion)
	}
	if size := formatSize(r.FileSizeBytes); size != "" {
		fmt.Fprintf(&b, "Size: %s\n", size)
	}
	if r.TrackViewURL != "" {
		fmt.Fprintf(&b, "From: %s\n", r.TrackViewURL)
	}
	return b.String()
}

func formatPrice(r model.SearchResult) string {
	if r.FormattedPrice != "" {
		return r.FormattedPrice
	}
	if r.Price == 0 {
		return "Free"
	}
	return strings.TrimSpace(fmt.Sprintf("%.2f %s", r.Price, r.Currency))
}

func formatDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format("2006-01-02")
}

func formatSize(raw string) string {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return ""
	}
	return humanize.Bytes(n)
}

func firstOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func boolToPlain(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
