package resolve

import "plugseek.dev/cli/internal/core/catalog"

// Kind discriminates the three resolution verdicts
type Kind string

const (
	KindSingleMatch  Kind = "single_match"
	KindCandidateSet Kind = "candidate_set"
	KindEmpty        Kind = "empty"
)

// Reason explains why a candidate set was returned instead of a single match
type Reason string

const (
	// ReasonExactNameCollision: the query hit at least one record's name
	// verbatim, so every same-named-or-containing record is surfaced for
	// the user to confirm.
	ReasonExactNameCollision Reason = "exact_name_collision"
	// ReasonFuzzyMultipleGood: several records scored under the goodness
	// threshold, or one did but shares its name with another record.
	ReasonFuzzyMultipleGood Reason = "fuzzy_multiple_good"
	// ReasonNoGoodMatch: nothing scored well; the full merged list is
	// returned so the user can pick manually.
	ReasonNoGoodMatch Reason = "no_good_match"
)

// Outcome is the resolver's verdict for one query. Constructed once per
// query, consumed by the presentation layer, never persisted. Exactly one
// of Match / Candidates is populated, per Kind.
type Outcome struct {
	Kind       Kind
	Match      catalog.Record
	Candidates []catalog.Record
	Reason     Reason
}

// SingleMatch wraps one confident record
func SingleMatch(record catalog.Record) Outcome {
	return Outcome{Kind: KindSingleMatch, Match: record.Clone()}
}

// CandidateSet wraps multiple plausible records with the reason they were
// not collapsed to a single match. Records are value copies: the outcome
// shares no storage with the resolver's input.
func CandidateSet(records []catalog.Record, reason Reason) Outcome {
	copied := make([]catalog.Record, len(records))
	for i, r := range records {
		copied[i] = r.Clone()
	}
	return Outcome{Kind: KindCandidateSet, Candidates: copied, Reason: reason}
}

// Empty marks a zero-record merged list
func Empty() Outcome {
	return Outcome{Kind: KindEmpty}
}

// IsSingleMatch reports whether exactly one confident record was found
func (o Outcome) IsSingleMatch() bool {
	return o.Kind == KindSingleMatch
}

// IsCandidateSet reports whether the user must disambiguate
func (o Outcome) IsCandidateSet() bool {
	return o.Kind == KindCandidateSet
}

// IsEmpty reports whether there was nothing to resolve
func (o Outcome) IsEmpty() bool {
	return o.Kind == KindEmpty
}
