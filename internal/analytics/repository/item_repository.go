package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// ItemDetail is one order item joined with its product (plus the English
// category translation), seller, and parent order. All joined sides are
// left joins; unmatched fields stay nil.
type ItemDetail struct {
	OrderID                    string     `gorm:"column:order_id"`
	OrderItemID                int        `gorm:"column:order_item_id"`
	ProductID                  string     `gorm:"column:product_id"`
	SellerID                   string     `gorm:"column:seller_id"`
	ShippingLimitDate          *time.Time `gorm:"column:shipping_limit_date"`
	Price                      float64    `gorm:"column:price"`
	FreightValue               float64    `gorm:"column:freight_value"`
	ProductCategoryName        *string    `gorm:"column:product_category_name"`
	ProductCategoryNameEnglish *string    `gorm:"column:product_category_name_english"`
	ProductWeightG             *float64   `gorm:"column:product_weight_g"`
	ProductLengthCm            *float64   `gorm:"column:product_length_cm"`
	ProductHeightCm            *float64   `gorm:"column:product_height_cm"`
	ProductWidthCm             *float64   `gorm:"column:product_width_cm"`
	ProductPhotosQty           *int       `gorm:"column:product_photos_qty"`
	SellerCity                 *string    `gorm:"column:seller_city"`
	SellerState                *string    `gorm:"column:seller_state"`
	SellerZipCodePrefix        *string    `gorm:"column:seller_zip_code_prefix"`
	OrderStatus                *string    `gorm:"column:order_status"`
	OrderPurchaseTimestamp     *time.Time `gorm:"column:order_purchase_timestamp"`
	OrderDeliveredCustomerDate *time.Time `gorm:"column:order_delivered_customer_date"`
	OrderEstimatedDeliveryDate *time.Time `gorm:"column:order_estimated_delivery_date"`
}

// Delivered reports whether the item's parent order reached the customer.
func (d *ItemDetail) Delivered() bool {
	return d.OrderStatus != nil && *d.OrderStatus == "delivered"
}

// ListDetailed returns every order item with product, seller, and order
// context in one scan. Both the item-grain extract and the seller scorer
// consume this result.
func (r *ItemRepository) ListDetailed(ctx context.Context) ([]ItemDetail, error) {
	var rows []ItemDetail
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			oi.order_id,
			oi.order_item_id,
			oi.product_id,
			oi.seller_id,
			oi.shipping_limit_date,
			oi.price,
			oi.freight_value,
			p.product_category_name,
			t.product_category_name_english,
			p.product_weight_g,
			p.product_length_cm,
			p.product_height_cm,
			p.product_width_cm,
			p.product_photos_qty,
			s.seller_city,
			s.seller_state,
			s.seller_zip_code_prefix,
			o.order_status,
			o.order_purchase_timestamp,
			o.order_delivered_customer_date,
			o.order_estimated_delivery_date
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.product_id
		LEFT JOIN product_category_translation t ON p.product_category_name = t.product_category_name
		LEFT JOIN sellers s ON oi.seller_id = s.seller_id
		LEFT JOIN orders o ON oi.order_id = o.order_id
	`).Scan(&rows).Error
	return rows, err
}
