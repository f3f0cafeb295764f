// Package listing provides the read-through cached listing repository the
// search engine pulls its candidate sets from.
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ishare-cloud/listmatch/internal/db"
	domlisting "github.com/ishare-cloud/listmatch/internal/domain/listing"
)

// Source supplies listings from the backing system (HTTP API or Postgres).
type Source interface {
	ListByDomain(ctx context.Context, d domlisting.Domain) ([]domlisting.Listing, error)
}

// store is the consumer interface for the listing cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo fetches per-domain listing collections, caching them as JSON blobs
// with a TTL. A nil store disables caching.
type Repo struct {
	source     Source
	store      store
	ttl        time.Duration
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a listing repository.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	source Source,
	s store,
	ttl time.Duration,
	keyPrefix string,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Repo {
	return &Repo{
		source:     source,
		store:      s,
		ttl:        ttl,
		keyPrefix:  keyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// ListByDomain returns the materialized candidate set for a domain, from
// cache when fresh, otherwise from the source.
func (r *Repo) ListByDomain(ctx context.Context, d domlisting.Domain) ([]domlisting.Listing, error) {
	key := r.cacheKey(d)

	if listings, ok := r.fromCache(ctx, key); ok {
		r.incCache("hit")
		return listings, nil
	}
	r.incCache("miss")

	listings, err := r.source.ListByDomain(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("fetch %s listings: %w", d.Word(), err)
	}

	r.toCache(ctx, key, listings)
	return listings, nil
}

func (r *Repo) cacheKey(d domlisting.Domain) string {
	return r.keyPrefix + "listings:" + d.Word()
}

func (r *Repo) fromCache(ctx context.Context, key string) ([]domlisting.Listing, bool) {
	if r.store == nil {
		return nil, false
	}

	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var listings []domlisting.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		r.logger.Warn("listing cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return listings, true
}

// toCache writes best-effort: a failed cache write never fails the search.
func (r *Repo) toCache(ctx context.Context, key string, listings []domlisting.Listing) {
	if r.store == nil {
		return
	}

	data, err := json.Marshal(listings)
	if err != nil {
		r.logger.Warn("marshal listings for cache", zap.Error(err))
		return
	}
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Repo) incCache(result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(result).Inc()
	}
}
