package storesearch

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const DefaultBaseURL = "https://itunes.apple.com"

// Endpoints builds catalog URLs against BaseURL. The zero value uses
// DefaultBaseURL.
type Endpoints struct {
	BaseURL string
}

var DefaultEndpoints = Endpoints{BaseURL: DefaultBaseURL}

// SearchURL returns the search endpoint for appName on the public catalog.
// It reports false when appName cannot be encoded.
func SearchURL(appName string) (*url.URL, bool) {
	return DefaultEndpoints.SearchURL(appName)
}

// SearchURLString is SearchURL in string form.
func SearchURLString(appName string) (string, bool) {
	return DefaultEndpoints.SearchURLString(appName)
}

// LookupURL returns the lookup endpoint for appID on the public catalog.
func LookupURL(appID int) (*url.URL, bool) {
	return DefaultEndpoints.LookupURL(appID)
}

// LookupURLString is LookupURL in string form.
func LookupURLString(appID int) (string, bool) {
	return DefaultEndpoints.LookupURLString(appID)
}

// SearchURL returns the search endpoint for appName under e.BaseURL. It
// reports false when appName cannot be encoded or the result does not parse
// as an absolute URL.
func (e Endpoints) SearchURL(appName string) (*url.URL, bool) {
	raw, ok := e.SearchURLString(appName)
	if !ok {
		return nil, false
	}
	return parseAbsolute(raw)
}

// SearchURLString composes the search endpoint without parsing it.
func (e Endpoints) SearchURLString(appName string) (string, bool) {
	term, ok := encodeQueryComponent(appName)
	if !ok {
		return "", false
	}
	return e.base() + "/search?media=software&entity=macSoftware&term=" + term, true
}

// LookupURL returns the lookup endpoint for appID under e.BaseURL, or false
// when the result does not parse as an absolute URL.
func (e Endpoints) LookupURL(appID int) (*url.URL, bool) {
	raw, ok := e.LookupURLString(appID)
	if !ok {
		return nil, false
	}
	return parseAbsolute(raw)
}

// LookupURLString composes the lookup endpoint without parsing it.
func (e Endpoints) LookupURLString(appID int) (string, bool) {
	return e.base() + "/lookup?id=" + strconv.Itoa(appID), true
}

func (e Endpoints) base() string {
	if e.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(e.BaseURL, "/")
}

// encodeQueryComponent escapes s for use as a single query value. Spaces
// become %20 rather than '+'.
func encodeQueryComponent(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), true
}

func parseAbsolute(raw string) (*url.URL, bool) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return nil, false
	}
	return u, true
}
