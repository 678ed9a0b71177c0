// Package ingest loads the store's CSV exports into the catalog tables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wearly/supportbot/internal/models"
)

const batchSize = 500

type Loader struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewLoader(db *gorm.DB, log *logrus.Logger) *Loader {
	if log == nil {
		log = logrus.New()
	}
	return &Loader{db: db, log: log}
}

// Load ingests the six catalog exports from dir. Files that are absent are
// skipped with a warning so partial datasets still load.
func (l *Loader) Load(dir string) error {
	steps := []struct {
		file string
		fn   func(*rowReader) error
	}{
		{"distribution_centers.csv", l.loadDistributionCenters},
		{"products.csv", l.loadProducts},
		{"users.csv", l.loadStoreUsers},
		{"orders.csv", l.loadOrders},
		{"order_items.csv", l.loadOrderItems},
		{"inventory_items.csv", l.loadInventoryItems},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			l.log.WithField("file", step.file).Warn("csv export missing, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("open %s: %w", step.file, err)
		}

		r, err := newRowReader(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("read header of %s: %w", step.file, err)
		}
		err = step.fn(r)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
		l.log.WithFields(logrus.Fields{"file": step.file, "rows": r.rows}).Info("csv export loaded")
	}
	return nil
}

// rowReader reads CSV records and resolves fields by header name.
type rowReader struct {
	r      *csv.Reader
	index  map[string]int
	record []string
	rows   int
}

func newRowReader(f io.Reader) (*rowReader, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return &rowReader{r: r, index: index}, nil
}

func (r *rowReader) next() (bool, error) {
	record, err := r.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	r.record = record
	r.rows++
	return true, nil
}

func (r *rowReader) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r *rowReader) intval(col string) int {
	n, _ := strconv.Atoi(r.str(col))
	return n
}

func (r *rowReader) floatval(col string) float64 {
	f, _ := strconv.ParseFloat(r.str(col), 64)
	return f
}

var timeLayouts = []string{
	"2006-01-02 15:04:05 UTC",
	"2006-01-02 15:04:05.999999999 UTC",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r *rowReader) timeval(col string) time.Time {
	t := r.timeptr(col)
	if t == nil {
		return time.Time{}
	}
	return *t
}

func (r *rowReader) timeptr(col string) *time.Time {
	raw := r.str(col)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func flush[T any](db *gorm.DB, batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	return db.CreateInBatches(batch, batchSize).Error
}

func (l *Loader) loadDistributionCenters(r *rowReader) error {
	var batch []models.DistributionCenter
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.DistributionCenter{
			ID:        r.intval("id"),
			Name:      r.str("name"),
			Latitude:  r.floatval("latitude"),
			Longitude: r.floatval("longitude"),
		})
	}
	return flush(l.db, batch)
}

func (l *Loader) loadProducts(r *rowReader) error {
	var batch []models.Product
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.Product{
			ID:                   r.intval("id"),
			Name:                 r.str("name"),
			Brand:                r.str("brand"),
			Category:             r.str("category"),
			Department:           r.str("department"),
			SKU:                  r.str("sku"),
			RetailPrice:          r.floatval("retail_price"),
			Cost:                 r.floatval("cost"),
			DistributionCenterID: r.intval("distribution_center_id"),
		})
	}
	return flush(l.db, batch)
}

func (l *Loader) loadStoreUsers(r *rowReader) error {
	var batch []models.StoreUser
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.StoreUser{
			ID:        r.intval("id"),
			FirstName: r.str("first_name"),
			LastName:  r.str("last_name"),
			Email:     r.str("email"),
			CreatedAt: r.timeval("created_at"),
		})
	}
	return flush(l.db, batch)
}

func (l *Loader) loadOrders(r *rowReader) error {
	var batch []models.Order
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.Order{
			OrderID:     r.intval("order_id"),
			UserID:      r.intval("user_id"),
			Status:      r.str("status"),
			NumOfItem:   r.intval("num_of_item"),
			CreatedAt:   r.timeval("created_at"),
			ShippedAt:   r.timeptr("shipped_at"),
			DeliveredAt: r.timeptr("delivered_at"),
			ReturnedAt:  r.timeptr("returned_at"),
		})
	}
	return flush(l.db, batch)
}

func (l *Loader) loadOrderItems(r *rowReader) error {
	var batch []models.OrderItem
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.OrderItem{
			ID:        r.intval("id"),
			OrderID:   r.intval("order_id"),
			UserID:    r.intval("user_id"),
			ProductID: r.intval("product_id"),
			Status:    r.str("status"),
			SalePrice: r.floatval("sale_price"),
			CreatedAt: r.timeval("created_at"),
			ShippedAt: r.timeptr("shipped_at"),
		})
	}
	return flush(l.db, batch)
}

func (l *Loader) loadInventoryItems(r *rowReader) error {
	var batch []models.InventoryItem
	for {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		batch = append(batch, models.InventoryItem{
			ID:        r.intval("id"),
			ProductID: r.intval("product_id"),
			Cost:      r.floatval("cost"),
			CreatedAt: r.timeval("created_at"),
			SoldAt:    r.timeptr("sold_at"),
		})
	}
	return flush(l.db, batch)
}
