package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// NoCache never hits. It is used when no Redis address is configured.
type NoCache struct{}

func (NoCache) Get(context.Context) ([]domain.Product, error) { return nil, ErrCacheMiss }
func (NoCache) Set(context.Context, []domain.Product) error   { return nil }
func (NoCache) Delete(context.Context) error                  { return nil }
