package search

import (
	"strings"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// evaluate runs the predicate for one listing against a criteria set,
// returning the per-field outcomes. Availability is filtered earlier and is
// never part of a criteria set.
func evaluate(l listing.Listing, set criteria.Set) []match.FieldOutcome {
	conds := set.Conditions()
	outcomes := make([]match.FieldOutcome, len(conds))
	for i, c := range conds {
		outcomes[i] = match.FieldOutcome{
			Field:     c.Field(),
			Satisfied: satisfies(l, c),
		}
	}
	return outcomes
}

// passesAll reports whether the listing satisfies every condition in the set.
func passesAll(l listing.Listing, set criteria.Set) bool {
	for _, c := range set.Conditions() {
		if !satisfies(l, c) {
			return false
		}
	}
	return true
}

// satisfies applies one condition's comparison rule to the listing attribute
// it targets. Condition text is already normalized (lower-case, trimmed).
func satisfies(l listing.Listing, c criteria.Condition) bool {
	switch c.Kind() {
	case criteria.Ceiling:
		return numericAttr(l, c.Field()) <= c.Number()
	case criteria.Floor:
		return numericAttr(l, c.Field()) >= c.Number()
	case criteria.Equals:
		return strings.EqualFold(textAttr(l, c.Field()), c.Text())
	case criteria.Contains:
		return strings.Contains(strings.ToLower(textAttr(l, c.Field())), c.Text())
	default:
		return false
	}
}

func numericAttr(l listing.Listing, f criteria.Field) float64 {
	switch f {
	case criteria.FieldMaxPricePerDay:
		return l.PricePerDay
	case criteria.FieldMinRating:
		return l.Rating
	case criteria.FieldMinYear:
		if l.Transport != nil {
			return float64(l.Transport.Year)
		}
	case criteria.FieldMinGuests:
		if l.Accommodation != nil {
			return float64(l.Accommodation.MaxGuests)
		}
	}
	return 0
}

func textAttr(l listing.Listing, f criteria.Field) string {
	switch f {
	case criteria.FieldLocation:
		return l.Address
	case criteria.FieldKeyword:
		return l.SearchText()
	case criteria.FieldVehicleType:
		if l.Transport != nil {
			return l.Transport.VehicleType
		}
	case criteria.FieldBrand:
		if l.Transport != nil {
			return l.Transport.Brand
		}
		if l.Item != nil {
			return l.Item.Brand
		}
	case criteria.FieldModel:
		if l.Transport != nil {
			return l.Transport.Model
		}
		if l.Item != nil {
			return l.Item.Model
		}
	case criteria.FieldPropertyType:
		if l.Accommodation != nil {
			return l.Accommodation.PropertyType
		}
	case criteria.FieldCategory:
		if l.Item != nil {
			return l.Item.Category
		}
	case criteria.FieldCondition:
		if l.Item != nil {
			return l.Item.Condition
		}
	}
	return ""
}
