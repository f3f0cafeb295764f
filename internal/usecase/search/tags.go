package search

import (
	"math"
	"sort"
	"strings"

	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// Core tag names, applied in fixed precedence order.
const (
	TagExactMatch     = "Exact Match"
	TagMostSuitable   = "Most Suitable"
	TagBudgetFriendly = "Budget Friendly"
	TagClosestMatch   = "Closest Match"
	TagGoodOption     = "Good Option"
)

// synthesizeTags assigns tags to every ranked result. Pure over the ranked
// slice, the relaxation trace and the policy; duplicate tags are never
// emitted.
func synthesizeTags(ranked []match.Result, trace match.Trace, p Policy) {
	budgetCutoff := budgetCutoff(ranked, p.BudgetFraction)
	minPrice := math.Inf(1)
	for i := range ranked {
		if price := ranked[i].Listing().PricePerDay; price < minPrice {
			minPrice = price
		}
	}

	for i := range ranked {
		r := &ranked[i]
		var tags []string

		if r.Strict() && trace.Empty() {
			tags = append(tags, TagExactMatch)
		}
		if i == 0 {
			tags = append(tags, TagMostSuitable)
		}
		if r.Listing().PricePerDay <= budgetCutoff {
			tags = append(tags, TagBudgetFriendly)
		}
		if !trace.Empty() {
			tags = append(tags, TagClosestMatch)
		}

		if r.Listing().PricePerDay <= minPrice*p.CheapestMargin {
			tags = append(tags, "Cheapest Option")
		}
		tags = append(tags, attributeTags(r.Listing())...)

		if len(tags) == 0 {
			tags = []string{TagGoodOption}
		}
		r.SetTags(dedupe(tags))
	}
}

// budgetCutoff returns the price bounding the lowest fraction of the
// returned set. The cheapest listing always qualifies.
func budgetCutoff(ranked []match.Result, fraction float64) float64 {
	if len(ranked) == 0 {
		return 0
	}
	prices := make([]float64, len(ranked))
	for i := range ranked {
		prices[i] = ranked[i].Listing().PricePerDay
	}
	sort.Float64s(prices)

	idx := int(math.Ceil(float64(len(prices))*fraction)) - 1
	if idx < 0 {
		idx = 0
	}
	return prices[idx]
}

// attributeTags derives descriptive labels from the listing's own
// attributes, independent of the criteria.
func attributeTags(l listing.Listing) []string {
	switch l.Domain {
	case listing.Transport:
		return transportTags(l.Transport)
	case listing.Accommodation:
		return accommodationTags(l.Accommodation)
	case listing.Item:
		return itemTags(l)
	default:
		return nil
	}
}

// recentModelYears and wellMaintainedYears bound the vehicle-age tags.
const (
	currentYear         = 2026
	recentModelYears    = 2
	wellMaintainedYears = 5
)

func transportTags(a *listing.TransportAttrs) []string {
	if a == nil {
		return nil
	}
	var tags []string

	if a.Year >= currentYear-recentModelYears {
		tags = append(tags, "Recent Model")
	} else if a.Year > 0 && a.Year >= currentYear-wellMaintainedYears {
		tags = append(tags, "Well Maintained")
	}

	switch strings.ToLower(a.VehicleType) {
	case "car":
		tags = append(tags, "Comfortable Ride")
	case "van", "suv":
		tags = append(tags, "Spacious")
	case "motorcycle", "bike":
		tags = append(tags, "Fuel Efficient")
	}

	if strings.EqualFold(a.Transmission, "Automatic") {
		tags = append(tags, "Easy to Drive")
	}

	if a.Seats >= 7 {
		tags = append(tags, "Great for Groups")
	} else if a.Seats >= 5 {
		tags = append(tags, "Family Friendly")
	}

	return tags
}

func accommodationTags(a *listing.AccommodationAttrs) []string {
	if a == nil {
		return nil
	}
	var tags []string

	if a.MaxGuests >= 6 {
		tags = append(tags, "Great for Groups")
	} else if a.MaxGuests >= 4 {
		tags = append(tags, "Family Friendly")
	}

	switch strings.ToLower(a.PropertyType) {
	case "villa", "house":
		tags = append(tags, "Spacious")
	case "apartment":
		tags = append(tags, "City Living")
	case "room", "homestay":
		tags = append(tags, "Cozy Stay")
	}

	return tags
}

func itemTags(l listing.Listing) []string {
	a := l.Item
	if a == nil {
		return nil
	}
	var tags []string

	category := strings.ToLower(a.Category)
	switch category {
	case "electronics":
		tags = append(tags, "Tech Gear")
	case "tools":
		tags = append(tags, "DIY Essential")
	case "furniture":
		tags = append(tags, "Home & Living")
	case "sports":
		tags = append(tags, "Active Lifestyle")
	}
	if strings.Contains(category, "camera") || strings.Contains(strings.ToLower(l.Title), "camera") {
		tags = append(tags, "Photography Gear")
	}

	switch strings.ToLower(a.Condition) {
	case "new", "like new":
		tags = append(tags, "Like New")
	}

	return tags
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
