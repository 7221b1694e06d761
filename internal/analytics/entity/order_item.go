package entity

import "time"

// OrderItem is one row of the order_items table; an order has one or more
// items, each referencing one product and one seller.
type OrderItem struct {
	OrderID           string     `gorm:"column:order_id;primaryKey" json:"order_id"`
	OrderItemID       int        `gorm:"column:order_item_id;primaryKey" json:"order_item_id"`
	ProductID         string     `gorm:"column:product_id" json:"product_id"`
	SellerID          string     `gorm:"column:seller_id" json:"seller_id"`
	ShippingLimitDate *time.Time `gorm:"column:shipping_limit_date" json:"shipping_limit_date"`
	Price             float64    `gorm:"column:price" json:"price"`
	FreightValue      float64    `gorm:"column:freight_value" json:"freight_value"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
