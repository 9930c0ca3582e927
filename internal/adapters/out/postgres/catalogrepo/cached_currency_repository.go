package catalogrepo

import (
	"context"
	"time"

	"basket/internal/core/domain/model/catalog"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type currencySource interface {
	GetByCode(ctx context.Context, code string) (catalog.Currency, error)
	GetAll(ctx context.Context) ([]catalog.Currency, error)
}

// CachedCurrencyRepository is a read-through cache in front of the currencies table.
// Entries expire after ttl; Refresh reloads the whole table at once.
// Misses are never cached, so a currency added later becomes visible on the next lookup.
type CachedCurrencyRepository struct {
	source currencySource
	cache  *expirable.LRU[string, catalog.Currency]
}

// NewCachedCurrencyRepository keeps at most size currencies for ttl each.
func NewCachedCurrencyRepository(source currencySource, size int, ttl time.Duration) *CachedCurrencyRepository {
	return &CachedCurrencyRepository{
		source: source,
		cache:  expirable.NewLRU[string, catalog.Currency](size, nil, ttl),
	}
}

// GetByCode serves code from the cache and falls back to the source on a miss.
func (r *CachedCurrencyRepository) GetByCode(ctx context.Context, code string) (catalog.Currency, error) {
	if c, ok := r.cache.Get(code); ok {
		return c, nil
	}

	c, err := r.source.GetByCode(ctx, code)
	if err != nil {
		return catalog.Currency{}, err
	}

	r.cache.Add(code, c)
	return c, nil
}

// Refresh replaces the cached entries with the current table contents and
// returns how many currencies were loaded.
func (r *CachedCurrencyRepository) Refresh(ctx context.Context) (int, error) {
	currencies, err := r.source.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	r.cache.Purge()
	for _, c := range currencies {
		r.cache.Add(c.Code(), c)
	}
	return len(currencies), nil
}

// Len returns the number of cached currencies.
func (r *CachedCurrencyRepository) Len() int {
	return r.cache.Len()
}
