package search

import (
	"fmt"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Policy is the engine configuration: relaxation orders, score weights and
// tag thresholds. It is passed explicitly into the service so the engine
// stays referentially transparent and testable with alternative policies.
type Policy struct {
	// AvailableStatus is the listing status accepted for booking.
	AvailableStatus string

	// BaseScore is the starting suitability score of every candidate.
	BaseScore float64
	// FieldWeight is added per satisfied original criterion.
	FieldWeight float64
	// PriceBonusWeight caps the continuous bonus for prices under a stated
	// ceiling. Kept below FieldWeight so a satisfied field always outweighs
	// any price advantage.
	PriceBonusWeight float64

	// BudgetFraction is the share of the returned set (by ascending price)
	// tagged "Budget Friendly".
	BudgetFraction float64
	// CheapestMargin is the multiplier over the pool minimum price within
	// which a listing still counts as "Cheapest Option".
	CheapestMargin float64

	// RelaxationOrder lists, per domain, the criteria to drop when the
	// strict pass is empty, least important first.
	RelaxationOrder map[listing.Domain][]criteria.Field
}

// DefaultPolicy returns the stock engine policy. Price and location are the
// highest-priority signals and relax last.
func DefaultPolicy() Policy {
	return Policy{
		AvailableStatus:  "ACTIVE",
		BaseScore:        1.0,
		FieldWeight:      1.0,
		PriceBonusWeight: 0.5,
		BudgetFraction:   1.0 / 3.0,
		CheapestMargin:   1.01,
		RelaxationOrder: map[listing.Domain][]criteria.Field{
			listing.Transport: {
				criteria.FieldModel,
				criteria.FieldBrand,
				criteria.FieldMinRating,
				criteria.FieldMinYear,
				criteria.FieldMaxPricePerDay,
				criteria.FieldVehicleType,
				criteria.FieldLocation,
			},
			listing.Accommodation: {
				criteria.FieldMinRating,
				criteria.FieldMinGuests,
				criteria.FieldMaxPricePerDay,
				criteria.FieldPropertyType,
				criteria.FieldLocation,
			},
			listing.Item: {
				criteria.FieldKeyword,
				criteria.FieldCondition,
				criteria.FieldMinRating,
				criteria.FieldMaxPricePerDay,
				criteria.FieldCategory,
				criteria.FieldLocation,
			},
		},
	}
}

// Validate checks the policy for internal consistency.
func (p Policy) Validate() error {
	if p.AvailableStatus == "" {
		return fmt.Errorf("available status is required")
	}
	if p.BudgetFraction <= 0 || p.BudgetFraction > 1 {
		return fmt.Errorf("budget fraction must be in (0, 1], got %v", p.BudgetFraction)
	}
	if p.CheapestMargin < 1 {
		return fmt.Errorf("cheapest margin must be >= 1, got %v", p.CheapestMargin)
	}
	for d, order := range p.RelaxationOrder {
		known := make(map[criteria.Field]bool)
		for _, f := range criteria.DomainFields(d) {
			known[f] = true
		}
		if len(known) == 0 {
			return fmt.Errorf("relaxation order for unknown domain %q", d)
		}
		seen := make(map[criteria.Field]bool)
		for _, f := range order {
			if !known[f] {
				return fmt.Errorf("relaxation order for %s names unknown field %q", d.Word(), f)
			}
			if seen[f] {
				return fmt.Errorf("relaxation order for %s repeats field %q", d.Word(), f)
			}
			seen[f] = true
		}
	}
	return nil
}

// orderFor returns the relaxation order for a domain. Criteria present in
// the set but absent from the configured order are appended so relaxation
// can always exhaust every optional criterion.
func (p Policy) orderFor(set criteria.Set) []criteria.Field {
	order := p.RelaxationOrder[set.Domain()]
	inOrder := make(map[criteria.Field]bool, len(order))
	out := make([]criteria.Field, 0, len(order))
	for _, f := range order {
		inOrder[f] = true
		if set.Has(f) {
			out = append(out, f)
		}
	}
	for _, f := range set.Fields() {
		if !inOrder[f] {
			out = append(out, f)
		}
	}
	return out
}
