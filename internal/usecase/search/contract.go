package search

import (
	"context"

	"github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Repository supplies the materialized candidate set for a domain. The
// engine never pages or streams: ranking needs the whole collection.
type Repository interface {
	ListByDomain(ctx context.Context, d listing.Domain) ([]listing.Listing, error)
}
