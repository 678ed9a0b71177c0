package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/utils"
	"gorm.io/gorm"
)

// CatalogRepo is the read-only view over the store's catalog, inventory and
// order tables.
type CatalogRepo interface {
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	SearchProducts(ctx context.Context, term string, limit int) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	GetInventoryStatus(ctx context.Context, productID int) (models.InventoryStatus, error)
	GetUserOrders(ctx context.Context, userID int) ([]models.OrderSummary, error)
	GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItemDetail, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListBrands(ctx context.Context) ([]string, error)
	GetPopularProducts(ctx context.Context, limit int) ([]models.PopularProduct, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) SearchProducts(ctx context.Context, term string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(term) + "%"

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern).
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *catalogRepo) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *catalogRepo) GetInventoryStatus(ctx context.Context, productID int) (models.InventoryStatus, error) {
	var status models.InventoryStatus
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("COUNT(*) AS total_items, " +
			"COUNT(CASE WHEN sold_at IS NULL THEN 1 END) AS available_items, " +
			"COUNT(sold_at) AS sold_items").
		Where("product_id = ?", productID).
		Scan(&status).Error
	return status, err
}

func (r *catalogRepo) GetUserOrders(ctx context.Context, userID int) ([]models.OrderSummary, error) {
	var rows []models.OrderSummary
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.order_id, orders.user_id, orders.status, orders.created_at, "+
			"COUNT(order_items.id) AS item_count").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.order_id").
		Where("orders.user_id = ?", userID).
		Group("orders.order_id, orders.user_id, orders.status, orders.created_at").
		Order("orders.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *catalogRepo) GetOrderItems(ctx context.Context, orderID int) ([]models.OrderItemDetail, error) {
	var rows []models.OrderItemDetail
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, "+
			"products.name AS product_name, products.brand, products.category, "+
			"order_items.status, order_items.sale_price").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error
	return rows, err
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Where("category IS NOT NULL AND category <> ''").
		Order("category").
		Pluck("category", &out).Error
	return out, err
}

func (r *catalogRepo) ListBrands(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct().
		Where("brand IS NOT NULL AND brand <> ''").
		Order("brand").
		Pluck("brand", &out).Error
	return out, err
}

func (r *catalogRepo) GetPopularProducts(ctx context.Context, limit int) ([]models.PopularProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []models.PopularProduct
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.brand, products.category, "+
			"products.retail_price, COUNT(order_items.id) AS sales_count").
		Joins("JOIN order_items ON order_items.product_id = products.id").
		Group("products.id, products.name, products.brand, products.category, products.retail_price").
		Order("sales_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
