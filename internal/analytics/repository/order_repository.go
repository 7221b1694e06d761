package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderWithCustomer is one order row joined with its customer. The customer
// side is a left join: an order without a matching customer keeps nil
// customer fields rather than being dropped.
type OrderWithCustomer struct {
	OrderID                    string     `gorm:"column:order_id"`
	CustomerID                 string     `gorm:"column:customer_id"`
	CustomerUniqueID           *string    `gorm:"column:customer_unique_id"`
	OrderStatus                string     `gorm:"column:order_status"`
	OrderPurchaseTimestamp     *time.Time `gorm:"column:order_purchase_timestamp"`
	OrderApprovedAt            *time.Time `gorm:"column:order_approved_at"`
	OrderDeliveredCarrierDate  *time.Time `gorm:"column:order_delivered_carrier_date"`
	OrderDeliveredCustomerDate *time.Time `gorm:"column:order_delivered_customer_date"`
	OrderEstimatedDeliveryDate *time.Time `gorm:"column:order_estimated_delivery_date"`
	CustomerCity               *string    `gorm:"column:customer_city"`
	CustomerState              *string    `gorm:"column:customer_state"`
	CustomerZipCodePrefix      *string    `gorm:"column:customer_zip_code_prefix"`
}

// Delivered reports whether the order reached the customer.
func (o *OrderWithCustomer) Delivered() bool {
	return o.OrderStatus == "delivered"
}

// ListWithCustomers returns every order joined with its customer.
func (r *OrderRepository) ListWithCustomers(ctx context.Context) ([]OrderWithCustomer, error) {
	var rows []OrderWithCustomer
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.order_id,
			o.customer_id,
			c.customer_unique_id,
			o.order_status,
			o.order_purchase_timestamp,
			o.order_approved_at,
			o.order_delivered_carrier_date,
			o.order_delivered_customer_date,
			o.order_estimated_delivery_date,
			c.customer_city,
			c.customer_state,
			c.customer_zip_code_prefix
		FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.customer_id
	`).Scan(&rows).Error
	return rows, err
}
