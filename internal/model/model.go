// Package model defines the domain types used across the application.
package model

import "time"

// Region identifies one of the independently versioned game catalogs.
type Region string

// Supported regions.
const (
	RegionNA Region = "NA"
	RegionJP Region = "JP"
)

// Servant represents one catalog entry for a named character.
// IDs are region-scoped: the same character usually has a different ID
// (and may have a different collection number) in NA and JP.
type Servant struct {
	ID           int64
	Name         string
	CollectionNo int
	Artwork      map[string]string
}

// artworkPreference is the fixed order in which artwork variants are
// considered when a single illustrative image is needed.
var artworkPreference = []string{
	"ascension1", "ascension2", "ascension3", "ascension4", "default",
}

// ArtworkURL returns the first available artwork URL in preference order,
// or "" if the servant has no usable artwork.
func (s *Servant) ArtworkURL() string {
	for _, key := range artworkPreference {
		if url, ok := s.Artwork[key]; ok && url != "" {
			return url
		}
	}
	return ""
}

// Banner represents one scheduled availability window for a servant.
type Banner struct {
	ID    int64
	Title string
	Start time.Time
	End   time.Time
}

// Relationship classifies the outcome of a cross-region servant lookup.
type Relationship string

// Possible lookup outcomes.
const (
	RelNone          Relationship = "none"
	RelNAOnly        Relationship = "na_only"
	RelJPOnly        Relationship = "jp_only"
	RelBothSame      Relationship = "both_same"
	RelBothDifferent Relationship = "both_different"
)

// MatchResult holds the representative servant per region (nil when the
// region had no candidate) and the derived relationship between them.
type MatchResult struct {
	Name         string
	NA           *Servant
	JP           *Servant
	Relationship Relationship
}

// FeedPost is one entry from the polled social feed. ID is opaque and
// compared by equality only; it carries no ordering.
type FeedPost struct {
	ID        string
	Title     string
	Link      string
	Published time.Time
}
