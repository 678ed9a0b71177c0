package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wearly/supportbot/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.DistributionCenter{},
		&models.Product{},
		&models.StoreUser{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
	))
	return db
}

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadPartialDataset(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()

	writeCSV(t, dir, "products.csv",
		"id,cost,category,name,brand,retail_price,department,sku,distribution_center_id\n"+
			"1,25.5,Jeans,Slim Fit Jeans,Levi's,59.99,Men,SKU1,1\n"+
			"2,8.0,Tops,Graphic Tshirt,Uniqlo,19.99,Women,SKU2,1\n")
	writeCSV(t, dir, "inventory_items.csv",
		"id,product_id,created_at,sold_at,cost\n"+
			"1,1,2023-01-05 10:00:00 UTC,,25.5\n"+
			"2,1,2023-01-05 10:00:00 UTC,2023-02-01 09:30:00 UTC,25.5\n")

	// the other four exports are deliberately absent
	require.NoError(t, NewLoader(db, nil).Load(dir))

	var productCount, inventoryCount int64
	require.NoError(t, db.Model(&models.Product{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.InventoryItem{}).Count(&inventoryCount).Error)
	assert.EqualValues(t, 2, productCount)
	assert.EqualValues(t, 2, inventoryCount)

	var product models.Product
	require.NoError(t, db.First(&product, 1).Error)
	assert.Equal(t, "Slim Fit Jeans", product.Name)
	assert.Equal(t, "Levi's", product.Brand)
	assert.InDelta(t, 59.99, product.RetailPrice, 1e-9)

	var onShelf, sold models.InventoryItem
	require.NoError(t, db.First(&onShelf, 1).Error)
	require.NoError(t, db.First(&sold, 2).Error)
	assert.Nil(t, onShelf.SoldAt)
	require.NotNil(t, sold.SoldAt)
}

func TestLoadRejectsMalformedCSV(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()

	writeCSV(t, dir, "products.csv", "id,name\n\"unterminated\n")
	assert.Error(t, NewLoader(db, nil).Load(dir))
}
