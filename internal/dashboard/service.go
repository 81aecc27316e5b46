package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lucasmoreno/pharmadash-backend/internal/salesmetrics"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
	"github.com/lucasmoreno/pharmadash-backend/pkg/redis"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

const (
	cacheScopeOrders     = "orders"
	cacheScopeProducts   = "products"
	cacheScopePromotions = "promotions"
)

type contentClient interface {
	ListOrders(ctx context.Context) ([]types.Order, error)
	ListProducts(ctx context.Context) ([]types.Product, error)
	ListPromotions(ctx context.Context) ([]types.Promotion, error)
}

// MetricsDTO is the dashboard metrics response: the report for the requested
// window plus the spend ranking over that same window.
type MetricsDTO struct {
	Range        enums.RangeKey             `json:"range"`
	Report       salesmetrics.Report        `json:"report"`
	TopCustomers []salesmetrics.TopCustomer `json:"top_customers"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}

// Service exposes the dashboard read models.
type Service interface {
	Metrics(ctx context.Context, rangeKey enums.RangeKey) (*MetricsDTO, error)
	Catalog(ctx context.Context) (*salesmetrics.CatalogProjection, error)
}

type service struct {
	content contentClient
	cache   redis.CacheStore
	ttl     config.CacheConfig
	log     *logger.Logger
	now     func() time.Time
}

// NewService builds a dashboard service. cache may be nil, in which case
// every request hits the content API directly.
func NewService(content contentClient, cache redis.CacheStore, ttl config.CacheConfig, log *logger.Logger) (Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		content: content,
		cache:   cache,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}, nil
}

func (s *service) Metrics(ctx context.Context, rangeKey enums.RangeKey) (*MetricsDTO, error) {
	rangeKey = enums.NormalizeRangeKey(rangeKey.String())

	orders, products, promotions, err := s.loadContent(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	s.warnDuplicateTitles(ctx, products)

	filtered := salesmetrics.FilterByRange(orders, rangeKey, now)

	resolver := salesmetrics.NewPriceResolver(promotions, now)
	agg, err := salesmetrics.Aggregate(filtered, products, resolver)
	if err != nil {
		return nil, err
	}
	report := salesmetrics.BuildReport(agg, filtered)

	// The spend ranking covers the same window as the report, so the card
	// follows the selected range.
	top := salesmetrics.TopCustomersBySpend(filtered, products, resolver, salesmetrics.DefaultTopCustomersLimit)

	return &MetricsDTO{
		Range:        rangeKey,
		Report:       report,
		TopCustomers: top,
		GeneratedAt:  now,
	}, nil
}

func (s *service) Catalog(ctx context.Context) (*salesmetrics.CatalogProjection, error) {
	orders, products, promotions, err := s.loadContent(ctx)
	if err != nil {
		return nil, err
	}

	resolver := salesmetrics.NewPriceResolver(promotions, s.now())
	projection, err := salesmetrics.ProjectCatalog(products, orders, resolver)
	if err != nil {
		return nil, err
	}
	return &projection, nil
}

func (s *service) loadContent(ctx context.Context) ([]types.Order, []types.Product, []types.Promotion, error) {
	orders, err := readThrough(ctx, s, cacheScopeOrders, s.ttl.OrdersTTL, s.content.ListOrders)
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := readThrough(ctx, s, cacheScopeProducts, s.ttl.ProductsTTL, s.content.ListProducts)
	if err != nil {
		return nil, nil, nil, err
	}
	promotions, err := readThrough(ctx, s, cacheScopePromotions, s.ttl.PromotionsTTL, s.content.ListPromotions)
	if err != nil {
		return nil, nil, nil, err
	}
	return orders, products, promotions, nil
}

// warnDuplicateTitles flags catalog entries whose titles collide, since the
// report's per-product buckets are title-keyed and will merge them.
func (s *service) warnDuplicateTitles(ctx context.Context, products []types.Product) {
	seen := make(map[string]int64, len(products))
	for _, product := range products {
		if firstID, ok := seen[product.Title]; ok {
			s.log.Warn(s.log.WithFields(ctx, map[string]any{
				"title":       product.Title,
				"product_ids": []int64{firstID, product.ID},
			}), "catalog products share a title; report buckets will merge them")
			continue
		}
		seen[product.Title] = product.ID
	}
}

// readThrough serves from the cache when possible, falling back to the
// content API and repopulating on a miss. Cache failures are logged and
// absorbed; only upstream failures propagate.
func readThrough[T any](ctx context.Context, s *service, scope string, ttl time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache == nil || ttl <= 0 {
		return fetch(ctx)
	}

	key := s.cache.CacheKey("content", scope)
	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var cached []T
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return cached, nil
		}
		// Corrupt payloads fall through to a refetch.
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.Warn(s.log.WithField(ctx, "cache_key", key), "cache read failed; fetching from content api")
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(items)
	if err == nil {
		if setErr := s.cache.Set(ctx, key, string(encoded), ttl); setErr != nil {
			s.log.Warn(s.log.WithField(ctx, "cache_key", key), "cache write failed")
		}
	}
	return items, nil
}
