// Package match holds the per-evaluation value objects: the outcome of one
// listing against a criteria set and the trace of relaxed criteria. Both are
// created per search run and discarded once the response is assembled.
package match

import (
	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// FieldOutcome records whether a single criterion held for a listing.
type FieldOutcome struct {
	Field     criteria.Field
	Satisfied bool
}

// Result pairs a listing with its evaluation against the original criteria.
type Result struct {
	listing  listing.Listing
	outcomes []FieldOutcome
	strict   bool
	score    float64
	tags     []string
}

// New creates a result. strict is true when every outcome is satisfied.
func New(l listing.Listing, outcomes []FieldOutcome) Result {
	strict := true
	for _, o := range outcomes {
		if !o.Satisfied {
			strict = false
			break
		}
	}
	return Result{listing: l, outcomes: outcomes, strict: strict}
}

// Listing returns the evaluated listing.
func (r *Result) Listing() listing.Listing { return r.listing }

// Outcomes returns the per-field satisfaction results.
func (r *Result) Outcomes() []FieldOutcome { return r.outcomes }

// Strict reports whether every original criterion is satisfied.
func (r *Result) Strict() bool { return r.strict }

// SatisfiedCount returns the number of satisfied original criteria.
func (r *Result) SatisfiedCount() int {
	n := 0
	for _, o := range r.outcomes {
		if o.Satisfied {
			n++
		}
	}
	return n
}

// Score returns the suitability score assigned by the ranker.
func (r *Result) Score() float64 { return r.score }

// SetScore assigns the suitability score.
func (r *Result) SetScore(s float64) { r.score = s }

// Tags returns the synthesized tags.
func (r *Result) Tags() []string { return r.tags }

// SetTags assigns the synthesized tags.
func (r *Result) SetTags(tags []string) { r.tags = tags }

// Trace is the ordered list of criteria dropped to produce a non-empty
// result set. Empty when the strict pass already succeeded.
type Trace struct {
	dropped []criteria.Field
}

// NewTrace creates a trace of dropped criteria in priority order.
func NewTrace(dropped []criteria.Field) Trace {
	return Trace{dropped: dropped}
}

// Empty reports whether no criterion was relaxed.
func (t Trace) Empty() bool { return len(t.dropped) == 0 }

// Fields returns the dropped criteria in the order they were relaxed.
func (t Trace) Fields() []criteria.Field { return t.dropped }
