// Package search implements the listing search engine: strict predicate
// evaluation, progressive criteria relaxation, suitability ranking and tag
// synthesis over a materialized candidate set.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/domain/criteria"
	"github.com/ishare-cloud/listmatch/internal/domain/listing"
	"github.com/ishare-cloud/listmatch/internal/domain/match"
)

// Service runs searches for one listing domain at a time. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	repo   Repository
	policy Policy
	logger *zap.Logger
}

// New creates a search service with an explicit engine policy.
func New(repo Repository, policy Policy, logger *zap.Logger) *Service {
	return &Service{repo: repo, policy: policy, logger: logger}
}

// Search evaluates the criteria set against the domain's candidate
// listings and returns a ranked, tagged, non-empty result whenever any
// available listing exists.
func (s *Service) Search(ctx context.Context, set criteria.Set) (Response, error) {
	d := set.Domain()

	candidates, err := s.repo.ListByDomain(ctx, d)
	if err != nil {
		return Response{}, fmt.Errorf("list %s listings: %w", d.Word(), err)
	}

	available, err := s.availableOnly(candidates)
	if err != nil {
		return Response{}, err
	}
	if len(available) == 0 {
		return assemble(d, nil, match.Trace{}, OutcomeEmpty), nil
	}

	tier := filterPassing(available, set)
	trace := match.Trace{}
	outcome := OutcomeExact

	if len(tier) == 0 {
		order := s.policy.orderFor(set)
		tier, trace = relax(available, set, order)
		outcome = OutcomeRelaxed
		if len(trace.Fields()) == len(set.Conditions()) {
			outcome = OutcomeFallback
		}
		s.logger.Debug("relaxed criteria to fill result set",
			zap.String("domain", d.Word()),
			zap.Int("results", len(tier)),
			zap.Any("dropped", trace.Fields()),
		)
	}

	// Score and tag against the original, unrelaxed criteria.
	results := make([]match.Result, len(tier))
	for i, l := range tier {
		results[i] = match.New(l, evaluate(l, set))
	}
	rank(results, set, s.policy)
	synthesizeTags(results, trace, s.policy)

	return assemble(d, results, trace, outcome), nil
}

// availableOnly validates every candidate and keeps those whose status is
// bookable. Invalid records are surfaced as data-integrity faults of the
// external source.
func (s *Service) availableOnly(candidates []listing.Listing) ([]listing.Listing, error) {
	out := make([]listing.Listing, 0, len(candidates))
	for i := range candidates {
		if err := candidates[i].Validate(); err != nil {
			return nil, err
		}
		if strings.EqualFold(candidates[i].Status, s.policy.AvailableStatus) {
			out = append(out, candidates[i])
		}
	}
	return out, nil
}
