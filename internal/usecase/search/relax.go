package search

import (
	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// relax progressively drops criteria, least important first, until some
// available listing passes. Called only when the strict pass is empty, so it
// always finds a non-empty configuration as long as candidates exist: once
// every optional criterion is dropped, the remaining set passes everything.
func relax(
	candidates []listing.Listing, set criteria.Set, order []criteria.Field,
) ([]listing.Listing, match.Trace) {
	dropped := make(map[criteria.Field]bool, len(order))
	trace := make([]criteria.Field, 0, len(order))

	for _, f := range order {
		dropped[f] = true
		trace = append(trace, f)

		relaxed := set.Without(dropped)
		tier := filterPassing(candidates, relaxed)
		if len(tier) > 0 {
			return tier, match.NewTrace(trace)
		}
	}

	// All optional criteria exhausted: every available listing qualifies.
	return candidates, match.NewTrace(trace)
}

// filterPassing returns the candidates satisfying every condition in the set.
func filterPassing(candidates []listing.Listing, set criteria.Set) []listing.Listing {
	out := make([]listing.Listing, 0, len(candidates))
	for _, l := range candidates {
		if passesAll(l, set) {
			out = append(out, l)
		}
	}
	return out
}
