package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	productRepo "tripdesk/database/repository/product"
	"tripdesk/models"
	"tripdesk/utils"
)

// DefaultCatalogService implements Service over Redis, Mongo, and the
// upstream partner API.
type DefaultCatalogService struct {
	Repo     productRepo.ProductRepository
	Upstream *UpstreamClient
	Cache    *redis.Client
	CacheTTL time.Duration
	Refresh  RefreshEnqueuer // optional; nil disables background refresh
}

func cacheKey(id string) string {
	return "product:" + id
}

// GetProduct returns the freshest snapshot available without blocking on
// upstream: cache hit, else store hit, else a synchronous upstream fetch.
// A stored document older than the cache TTL is still served, with a
// background refresh enqueued.
func (s *DefaultCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, cacheKey(id)).Bytes()
		if err == nil {
			var doc models.Product
			if err := json.Unmarshal(raw, &doc); err == nil {
				return &doc, nil
			}
			logger.Warn("catalog: dropping corrupt cache entry", zap.String("productID", id))
			s.Cache.Del(ctx, cacheKey(id))
		}
	}

	doc, err := s.Repo.GetByID(ctx, id)
	if err == nil && doc != nil {
		if s.Refresh != nil && s.CacheTTL > 0 && time.Since(doc.FetchedAt) > s.CacheTTL {
			if err := s.Refresh.EnqueueProductRefresh(id); err != nil {
				logger.Warn("catalog: failed to enqueue refresh", zap.String("productID", id), zap.Error(err))
			}
		}
		s.cacheDoc(ctx, doc)
		return doc, nil
	}

	return s.RefreshProduct(ctx, id)
}

// RefreshProduct forces a fetch from upstream and rewrites store and cache.
func (s *DefaultCatalogService) RefreshProduct(ctx context.Context, id string) (*models.Product, error) {
	doc, err := s.Upstream.FetchProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refresh product %s: %w", id, err)
	}
	if err := s.Repo.Upsert(ctx, doc); err != nil {
		utils.GetLogger().Error("catalog: failed to persist product", zap.String("productID", id), zap.Error(err))
	}
	s.cacheDoc(ctx, doc)
	return doc, nil
}

func (s *DefaultCatalogService) cacheDoc(ctx context.Context, doc *models.Product) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := s.Cache.Set(ctx, cacheKey(doc.ID), raw, ttl).Err(); err != nil {
		utils.GetLogger().Warn("catalog: failed to cache product", zap.String("productID", doc.ID), zap.Error(err))
	}
}
