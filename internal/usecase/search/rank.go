package search

import (
	"sort"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// rank scores every result against the original, unrelaxed criteria and
// orders them best-first. The order is total: equal scores break by
// ascending price, then ascending listing id, so re-running on the same
// inputs always yields the same sequence.
func rank(results []match.Result, original criteria.Set, p Policy) {
	for i := range results {
		results[i].SetScore(score(&results[i], original, p))
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := &results[i], &results[j]
		if a.Score() != b.Score() {
			return a.Score() > b.Score()
		}
		if a.Listing().PricePerDay != b.Listing().PricePerDay {
			return a.Listing().PricePerDay < b.Listing().PricePerDay
		}
		return a.Listing().ID < b.Listing().ID
	})
}

// score computes the suitability score: base, plus a weighted point per
// satisfied original field, plus a continuous bonus for prices under a
// stated ceiling. Listings without a stated ceiling are never penalized.
func score(r *match.Result, original criteria.Set, p Policy) float64 {
	s := p.BaseScore + p.FieldWeight*float64(r.SatisfiedCount())

	if c, ok := original.Condition(criteria.FieldMaxPricePerDay); ok && c.Number() > 0 {
		deviation := (c.Number() - r.Listing().PricePerDay) / c.Number()
		if deviation > 0 {
			if deviation > 1 {
				deviation = 1
			}
			s += p.PriceBonusWeight * deviation
		}
	}

	return s
}
