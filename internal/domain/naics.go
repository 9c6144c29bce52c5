package domain

import "slices"

// NaicsGroupTypes are the levels of the NAICS hierarchy, broadest first.
var NaicsGroupTypes = []string{
	"sector",
	"subsector",
	"industry-group",
	"international-industry",
	"national-industry",
}

// IsNaicsGroupType reports whether s names a level of the hierarchy.
func IsNaicsGroupType(s string) bool {
	return slices.Contains(NaicsGroupTypes, s)
}

// NaicsCode is a single NAICS classification code.
// Hash is the stable identifier Ask Kodiak uses in paths; Code is the
// six digit number shown to people.
type NaicsCode struct {
	Hash        string
	Code        string
	Description string
}

// NaicsGroup is a node of the NAICS hierarchy (sector, subsector, ...).
type NaicsGroup struct {
	Code        string
	Title       string
	Type        string
	Parent      string
	Seq         string
	Codes       []string
	Descendants []string
}

// NaicsDescription is the long form text of a NAICS group.
// Ask Kodiak has descriptions for some groups only.
type NaicsDescription struct {
	Group string
	Text  string
}

// IsLeaf reports whether the group has no child groups.
func (g *NaicsGroup) IsLeaf() bool {
	return len(g.Descendants) == 0
}

// NaicsCodeSuggestion is a ranked search hit for a NAICS code.
type NaicsCodeSuggestion struct {
	ObjectID    string
	Hash        string
	Code        string
	Description string
	SIC         string
	Path        []string
	Sector      string
	Subsector   string
	ReplacedBy  []string
	Replaces    []string
}

// NaicsGroupSuggestion is a ranked search hit for a NAICS group.
type NaicsGroupSuggestion struct {
	ObjectID    string
	Code        string
	Title       string
	Seq         string
	Descendants []string
}

// SuggestionPage is one page of search hits.
type SuggestionPage[T any] struct {
	Query       string
	Hits        []T
	TotalHits   int
	Page        int
	Pages       int
	HitsPerPage int
}

// Suggestions pairs code and group hits for one search term.
type Suggestions struct {
	Term   string
	Codes  *SuggestionPage[NaicsCodeSuggestion]
	Groups *SuggestionPage[NaicsGroupSuggestion]
}

// CodeMatch is a NAICS code found by free-text search, best match first.
type CodeMatch struct {
	NaicsCode
	Score int
}

// Resolution is the outcome of looking up several NAICS codes at once.
type Resolution struct {
	Codes []NaicsCode

	// Missing lists requested hashes the catalogue does not know.
	Missing []string
}
