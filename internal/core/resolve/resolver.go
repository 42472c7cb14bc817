package resolve

import (
	"sort"
	"strings"

	"plugseek.dev/cli/internal/core/catalog"
)

// Config holds tuning for the resolver
type Config struct {
	// GoodnessThreshold is the fuzzy distance below which a record counts
	// as a plausible match (0 best - 1 worst).
	GoodnessThreshold float64
}

// DefaultConfig returns the stock resolver tuning
func DefaultConfig() Config {
	return Config{GoodnessThreshold: 0.2}
}

// Resolver turns a merged record list plus the user's query into a single
// confident record, a candidate set to choose from, or nothing. It borrows
// the input read-only; outcomes carry value copies.
type Resolver struct {
	threshold float64
}

// NewResolver creates a resolver from config
func NewResolver(config Config) *Resolver {
	threshold := config.GoodnessThreshold
	if threshold <= 0 {
		threshold = DefaultConfig().GoodnessThreshold
	}
	return &Resolver{threshold: threshold}
}

// Resolve applies the disambiguation pipeline. Decision order:
//
//  1. empty list -> Empty
//  2. one-element list -> SingleMatch, unconditionally: no score check
//     gates this path
//  3. verbatim name hit -> CandidateSet of every record whose name
//     contains the query (ExactNameCollision), even when that superset
//     has exactly one element
//  4. fuzzy pass over display names with author/description as secondary
//     signals; a lone hit whose name is unique across the whole list is
//     confident, anything else stays a candidate set; when nothing scores
//     the entire unfiltered list is returned (NoGoodMatch)
//
// Identical names across or within catalogs are common, so an exact hit is
// surfaced as a "please confirm" set rather than a guess.
func (r *Resolver) Resolve(query string, records []catalog.Record) Outcome {
	if len(records) == 0 {
		return Empty()
	}
	if len(records) == 1 {
		return SingleMatch(records[0])
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))

	if hasExactMatch(queryLower, records) {
		return CandidateSet(containmentMatches(queryLower, records), ReasonExactNameCollision)
	}

	kept := r.fuzzyMatches(query, records)
	sortBySource(kept)

	nameFrequency := displayNameFrequency(records)

	if len(kept) == 1 && nameFrequency[strings.ToLower(kept[0].DisplayName)] == 1 {
		return SingleMatch(kept[0])
	}
	if len(kept) > 0 {
		return CandidateSet(kept, ReasonFuzzyMultipleGood)
	}
	return CandidateSet(records, ReasonNoGoodMatch)
}

// hasExactMatch reports a case-insensitive verbatim display-name hit.
// Records missing their display name never match.
func hasExactMatch(queryLower string, records []catalog.Record) bool {
	for _, rec := range records {
		if rec.DisplayName == "" {
			continue
		}
		if strings.ToLower(rec.DisplayName) == queryLower {
			return true
		}
	}
	return false
}

// containmentMatches widens an exact hit to every record whose display
// name contains the query, a superset that always includes the exact
// matches themselves.
func containmentMatches(queryLower string, records []catalog.Record) []catalog.Record {
	var matches []catalog.Record
	for _, rec := range records {
		if rec.DisplayName == "" {
			continue
		}
		if strings.Contains(strings.ToLower(rec.DisplayName), queryLower) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// fuzzyMatches keeps every record scoring under the goodness threshold.
// Records missing their display name are treated as non-matching.
func (r *Resolver) fuzzyMatches(query string, records []catalog.Record) []catalog.Record {
	var kept []catalog.Record
	for _, rec := range records {
		if rec.DisplayName == "" {
			continue
		}
		if recordDistance(query, rec) < r.threshold {
			kept = append(kept, rec)
		}
	}
	return kept
}

// sortBySource orders Spiget records before Modrinth records, stable
// within each provenance group. Filtering preserves merge order already;
// the sort guarantees it for arbitrary inputs.
func sortBySource(records []catalog.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return sourceRank(records[i].Source) < sourceRank(records[j].Source)
	})
}

func sourceRank(src catalog.SourceID) int {
	switch src {
	case catalog.SourceSpiget:
		return 0
	case catalog.SourceModrinth:
		return 1
	default:
		return 2
	}
}

// displayNameFrequency counts lower-cased display names across the entire
// merged list, independent of any filtering.
func displayNameFrequency(records []catalog.Record) map[string]int {
	freq := make(map[string]int, len(records))
	for _, rec := range records {
		freq[strings.ToLower(rec.DisplayName)]++
	}
	return freq
}
