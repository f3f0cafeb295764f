package search

import (
	"fmt"
	"strings"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// Outcome labels how the result set was produced, for messages and metrics.
type Outcome string

const (
	// OutcomeExact means the strict pass returned the results.
	OutcomeExact Outcome = "exact"
	// OutcomeRelaxed means some criteria were dropped to fill the results.
	OutcomeRelaxed Outcome = "relaxed"
	// OutcomeFallback means every optional criterion was exhausted and all
	// available listings are returned.
	OutcomeFallback Outcome = "fallback"
	// OutcomeEmpty means the domain has no available listings at all.
	OutcomeEmpty Outcome = "empty"
)

// Record is one ranked, tagged listing in the response.
type Record struct {
	Listing listing.Listing
	Score   float64
	Tags    []string
}

// Response is the assembled engine output.
type Response struct {
	Message string
	Outcome Outcome
	Relaxed []criteria.Field
	Results []Record
}

// assemble builds the summary message and packages the ranked results.
func assemble(d listing.Domain, ranked []match.Result, trace match.Trace, outcome Outcome) Response {
	records := make([]Record, len(ranked))
	for i := range ranked {
		records[i] = Record{
			Listing: ranked[i].Listing(),
			Score:   ranked[i].Score(),
			Tags:    ranked[i].Tags(),
		}
	}

	return Response{
		Message: message(d, len(records), trace, outcome),
		Outcome: outcome,
		Relaxed: trace.Fields(),
		Results: records,
	}
}

func message(d listing.Domain, n int, trace match.Trace, outcome Outcome) string {
	switch outcome {
	case OutcomeEmpty:
		return fmt.Sprintf("No %s listings are currently available.", d.Word())
	case OutcomeExact:
		return fmt.Sprintf("Found %d %s(s) matching your criteria.", n, d.Noun())
	default:
		return fmt.Sprintf(
			"No exact matches; showing closest results without filtering by %s.",
			fieldList(trace.Fields()),
		)
	}
}

// fieldList renders relaxed field names for the summary message.
func fieldList(fields []criteria.Field) string {
	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label()
	}
	if len(labels) > 1 {
		return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
	}
	return strings.Join(labels, "")
}
