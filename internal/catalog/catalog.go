// Package catalog serves the product listing with a read-through cache in
// front of the catalog collaborator.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Source interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
}

type Catalog struct {
	source Source
	cache  ProductCache
	log    *zap.Logger
	sfg    singleflight.Group // coalesces concurrent misses
}

func New(source Source, cache ProductCache, log *zap.Logger) *Catalog {
	if cache == nil {
		cache = NoCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		source: source,
		cache:  cache,
		log:    log,
	}
}

// Products returns the listing from cache, falling back to the collaborator.
// Cache errors are logged and never fail the call.
func (c *Catalog) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do(cacheKey, func() (interface{}, error) {
		products, err := c.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			c.log.Warn("catalog cache get failed", zap.Error(err))
		}

		products, err = c.source.GetProducts(ctx)
		if err != nil {
			return nil, err
		}

		setCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := c.cache.Set(setCtx, products); err != nil {
			c.log.Warn("catalog cache set failed", zap.Error(err))
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Product looks a product up by id in the listing.
func (c *Catalog) Product(ctx context.Context, id domain.ID) (domain.Product, bool, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range products {
		if p.ID.Equal(id) {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

// Invalidate drops the cached listing.
func (c *Catalog) Invalidate(ctx context.Context) {
	if err := c.cache.Delete(ctx); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
