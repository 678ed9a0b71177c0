package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/wearly/supportbot/internal/cache"
	"github.com/wearly/supportbot/internal/models"
	pgrepo "github.com/wearly/supportbot/internal/repositories/postgres"
	"github.com/wearly/supportbot/internal/utils"
)

// ProductDetails is a product joined with its live inventory counts.
type ProductDetails struct {
	Product   models.Product         `json:"product"`
	Inventory models.InventoryStatus `json:"inventory"`
}

type CatalogService interface {
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, id int) (*ProductDetails, error)
	GetUserOrders(ctx context.Context, userID int) ([]models.OrderSummary, error)
	GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItemDetail, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListBrands(ctx context.Context) ([]string, error)
	GetPopularProducts(ctx context.Context, limit int) ([]models.PopularProduct, error)
}

// catalogService caches the hot listing queries in redis when a cache is
// wired; a nil cache means every call goes straight to the database.
type catalogService struct {
	repo  pgrepo.CatalogRepo
	cache cache.Cache
	log   *logrus.Logger
}

func NewCatalogService(repo pgrepo.CatalogRepo, c cache.Cache, log *logrus.Logger) CatalogService {
	if log == nil {
		log = logrus.New()
	}
	return &catalogService{repo: repo, cache: c, log: log}
}

func (s *catalogService) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	const op = "CatalogService.ListProducts"

	rows, err := s.repo.ListProducts(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list products", err)
	}
	return rows, nil
}

func (s *catalogService) SearchProducts(ctx context.Context, query string, limit int) ([]models.Product, error) {
	const op = "CatalogService.SearchProducts"

	if query == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "query is required", nil)
	}
	rows, err := s.repo.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search products", err)
	}
	return rows, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (*ProductDetails, error) {
	const op = "CatalogService.GetProduct"

	product, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "product not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load product", err)
	}

	var inventory models.InventoryStatus
	if !s.cacheGet(ctx, cache.InventoryKey(id), &inventory) {
		inventory, err = s.repo.GetInventoryStatus(ctx, id)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to load inventory", err)
		}
		s.cacheSet(ctx, cache.InventoryKey(id), inventory)
	}
	return &ProductDetails{Product: *product, Inventory: inventory}, nil
}

func (s *catalogService) GetUserOrders(ctx context.Context, userID int) ([]models.OrderSummary, error) {
	const op = "CatalogService.GetUserOrders"

	rows, err := s.repo.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list orders", err)
	}
	return rows, nil
}

func (s *catalogService) GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItemDetail, error) {
	const op = "CatalogService.GetOrderItems"

	rows, err := s.repo.GetOrderItems(ctx, orderID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list order items", err)
	}
	if len(rows) == 0 {
		return nil, utils.E(utils.CodeNotFound, op, "order not found", nil)
	}
	return rows, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	const op = "CatalogService.ListCategories"

	var cached []string
	if s.cacheGet(ctx, cache.CategoriesKey(), &cached) {
		return cached, nil
	}
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list categories", err)
	}
	s.cacheSet(ctx, cache.CategoriesKey(), rows)
	return rows, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]string, error) {
	const op = "CatalogService.ListBrands"

	var cached []string
	if s.cacheGet(ctx, cache.BrandsKey(), &cached) {
		return cached, nil
	}
	rows, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list brands", err)
	}
	s.cacheSet(ctx, cache.BrandsKey(), rows)
	return rows, nil
}

func (s *catalogService) GetPopularProducts(ctx context.Context, limit int) ([]models.PopularProduct, error) {
	const op = "CatalogService.GetPopularProducts"

	if limit <= 0 {
		limit = 10
	}
	var cached []models.PopularProduct
	if s.cacheGet(ctx, cache.PopularProductsKey(limit), &cached) {
		return cached, nil
	}
	rows, err := s.repo.GetPopularProducts(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list popular products", err)
	}
	s.cacheSet(ctx, cache.PopularProductsKey(limit), rows)
	return rows, nil
}

// cacheGet and cacheSet treat every cache failure as a miss; the database
// stays the source of truth.
func (s *catalogService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (s *catalogService) cacheSet(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, val, cache.DefaultTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}
