package model

// SearchResult is one Mac App Store catalog entry as returned by the iTunes
// search and lookup endpoints.
type SearchResult struct {
	TrackID                   int     `json:"trackId"`
	TrackName                 string  `json:"trackName"`
	Version                   string  `json:"version"`
	Price                     float64 `json:"price"`
	FormattedPrice            string  `json:"formattedPrice,omitempty"`
	Currency                  string  `json:"currency,omitempty"`
	BundleID                  string  `json:"bundleId,omitempty"`
	SellerName                string  `json:"sellerName,omitempty"`
	SellerURL                 string  `json:"sellerUrl,omitempty"`
	TrackViewURL              string  `json:"trackViewUrl,omitempty"`
	ReleaseDate               string  `json:"releaseDate,omitempty"`
	CurrentVersionReleaseDate string  `json:"currentVersionReleaseDate,omitempty"`
	MinimumOSVersion          string  `json:"minimumOsVersion,omitempty"`
	FileSizeBytes             string  `json:"fileSizeBytes,omitempty"`
	Description               string  `json:"description,omitempty"`
	AverageUserRating         float64 `json:"averageUserRating,omitempty"`
}

// SearchResponse is the envelope shared by both endpoints.
type SearchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []SearchResult `json:"results"`
}
