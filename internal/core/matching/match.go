// Package matching holds the pure predicates behind every filtered listing in
// the marketplace: NAICS and certification matching for the contractor
// directory, free-text search over opportunity listings, and the derived
// annotations (deadline urgency) those listings carry. All functions are
// side-effect free so the same rules apply identically wherever a view
// filters a fetched snapshot.
package matching

import (
	"strings"

	"github.com/fedmatch/marketplace/internal/core/domain"
)

// CodeMatches reports whether term matches a set of NAICS codes. An empty
// term matches everything. Otherwise the term must be a substring of at least
// one code, so a partial prefix like "41" matches "4120". Codes are numeric,
// the comparison is case-sensitive.
func CodeMatches(codes []string, term string) bool {
	if term == "" {
		return true
	}
	for _, code := range codes {
		if strings.Contains(code, term) {
			return true
		}
	}
	return false
}

// TextMatches reports whether term is a case-insensitive substring of s.
// An empty term matches everything.
func TextMatches(s, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// certMatches is an exact membership test, never substring: "8(a)" must not
// match a filter of "8".
func certMatches(certs []string, want string) bool {
	if want == "" {
		return true
	}
	for _, c := range certs {
		if c == want {
			return true
		}
	}
	return false
}

// ContractorFilter carries the directory filter criteria. Zero values mean
// "no constraint"; populated fields combine with logical AND.
type ContractorFilter struct {
	NAICS         string  // substring match against the code set
	Certification string  // exact membership test
	Location      string  // case-insensitive substring of any service area
	MinRating     float64 // rating >= MinRating, inclusive
	Query         string  // free text over company name and description
}

// Matches applies the full AND-composed filter to a contractor and its
// identity profile.
func (f ContractorFilter) Matches(p *domain.Profile, cp *domain.ContractorProfile) bool {
	if !CodeMatches(cp.NAICSCodes, f.NAICS) {
		return false
	}
	if !certMatches(cp.Certifications, f.Certification) {
		return false
	}
	if f.Location != "" && !anyTextMatches(cp.ServiceAreas, f.Location) {
		return false
	}
	if cp.Rating < f.MinRating {
		return false
	}
	if f.Query != "" {
		if !TextMatches(p.CompanyName, f.Query) && !TextMatches(cp.Description, f.Query) {
			return false
		}
	}
	return true
}

func anyTextMatches(values []string, term string) bool {
	for _, v := range values {
		if TextMatches(v, term) {
			return true
		}
	}
	return false
}

// OpportunityFilter carries the listing filter criteria shown to a user.
type OpportunityFilter struct {
	Query string                 // free text over title, NAICS codes, location
	Type  domain.OpportunityType // empty = all types
}

// Matches reports whether an opportunity passes the listing filter. The free
// text query matches when it appears (case-insensitively) in the title, in
// any NAICS code, or in the location.
func (f OpportunityFilter) Matches(o *domain.Opportunity) bool {
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	if f.Query == "" {
		return true
	}
	if TextMatches(o.Title, f.Query) || TextMatches(o.Location, f.Query) {
		return true
	}
	return anyTextMatches(o.NAICSCodes, f.Query)
}
