package models

import "time"

// Catalog tables are loaded from the store's CSV exports (see internal/ingest)
// and are read-only at serving time.

type DistributionCenter struct {
	ID        int     `gorm:"column:id;primaryKey" json:"id"`
	Name      string  `gorm:"column:name;type:varchar(255)" json:"name"`
	Latitude  float64 `gorm:"column:latitude" json:"latitude"`
	Longitude float64 `gorm:"column:longitude" json:"longitude"`
}

func (DistributionCenter) TableName() string { return "distribution_centers" }

type Product struct {
	ID                   int     `gorm:"column:id;primaryKey" json:"id"`
	Name                 string  `gorm:"column:name;type:text;index" json:"name"`
	Brand                string  `gorm:"column:brand;type:varchar(255);index" json:"brand"`
	Category             string  `gorm:"column:category;type:varchar(255);index" json:"category"`
	Department           string  `gorm:"column:department;type:varchar(100)" json:"department"`
	SKU                  string  `gorm:"column:sku;type:varchar(100)" json:"sku,omitempty"`
	RetailPrice          float64 `gorm:"column:retail_price" json:"retail_price"`
	Cost                 float64 `gorm:"column:cost" json:"cost"`
	DistributionCenterID int     `gorm:"column:distribution_center_id" json:"distribution_center_id,omitempty"`
}

func (Product) TableName() string { return "products" }

// StoreUser is a row from the store's users export, distinct from ChatUser.
type StoreUser struct {
	ID        int       `gorm:"column:id;primaryKey" json:"id"`
	FirstName string    `gorm:"column:first_name;type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (StoreUser) TableName() string { return "store_users" }

type Order struct {
	OrderID     int        `gorm:"column:order_id;primaryKey" json:"order_id"`
	UserID      int        `gorm:"column:user_id;index" json:"user_id"`
	Status      string     `gorm:"column:status;type:varchar(50)" json:"status"`
	NumOfItem   int        `gorm:"column:num_of_item" json:"num_of_item"`
	CreatedAt   time.Time  `gorm:"column:created_at;index" json:"created_at"`
	ShippedAt   *time.Time `gorm:"column:shipped_at" json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
	ReturnedAt  *time.Time `gorm:"column:returned_at" json:"returned_at,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        int        `gorm:"column:id;primaryKey" json:"id"`
	OrderID   int        `gorm:"column:order_id;index" json:"order_id"`
	UserID    int        `gorm:"column:user_id" json:"user_id"`
	ProductID int        `gorm:"column:product_id;index" json:"product_id"`
	Status    string     `gorm:"column:status;type:varchar(50)" json:"status"`
	SalePrice float64    `gorm:"column:sale_price" json:"sale_price"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	ShippedAt *time.Time `gorm:"column:shipped_at" json:"shipped_at,omitempty"`
}

func (OrderItem) TableName() string { return "order_items" }

type InventoryItem struct {
	ID        int        `gorm:"column:id;primaryKey" json:"id"`
	ProductID int        `gorm:"column:product_id;index" json:"product_id"`
	Cost      float64    `gorm:"column:cost" json:"cost"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	SoldAt    *time.Time `gorm:"column:sold_at" json:"sold_at,omitempty"` // nil means still on the shelf
}

func (InventoryItem) TableName() string { return "inventory_items" }

// InventoryStatus is the aggregate stock view for one product.
type InventoryStatus struct {
	TotalItems     int `json:"total_items"`
	AvailableItems int `json:"available_items"`
	SoldItems      int `json:"sold_items"`
}

// PopularProduct is a product ranked by how often it was ordered.
type PopularProduct struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	RetailPrice float64 `json:"retail_price"`
	SalesCount  int     `json:"sales_count"`
}

// OrderSummary is an order row joined with its item count.
type OrderSummary struct {
	OrderID   int       `json:"order_id"`
	UserID    int       `json:"user_id"`
	Status    string    `json:"status"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderItemDetail is an order item joined with its product.
type OrderItemDetail struct {
	ID          int     `json:"id"`
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	SalePrice   float64 `json:"sale_price"`
}
