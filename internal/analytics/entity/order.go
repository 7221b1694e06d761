package entity

import "time"

// Order statuses as they appear in the source dataset.
const (
	OrderStatusCreated     = "created"
	OrderStatusApproved    = "approved"
	OrderStatusInvoiced    = "invoiced"
	OrderStatusShipped     = "shipped"
	OrderStatusDelivered   = "delivered"
	OrderStatusCanceled    = "canceled"
	OrderStatusUnavailable = "unavailable"
)

// Order is one row of the orders table. Any of the lifecycle timestamps
// may be absent; a non-delivered order never has a customer delivery date.
type Order struct {
	OrderID                    string     `gorm:"column:order_id;primaryKey" json:"order_id"`
	CustomerID                 string     `gorm:"column:customer_id" json:"customer_id"`
	OrderStatus                string     `gorm:"column:order_status" json:"order_status"`
	OrderPurchaseTimestamp     *time.Time `gorm:"column:order_purchase_timestamp" json:"order_purchase_timestamp"`
	OrderApprovedAt            *time.Time `gorm:"column:order_approved_at" json:"order_approved_at"`
	OrderDeliveredCarrierDate  *time.Time `gorm:"column:order_delivered_carrier_date" json:"order_delivered_carrier_date"`
	OrderDeliveredCustomerDate *time.Time `gorm:"column:order_delivered_customer_date" json:"order_delivered_customer_date"`
	OrderEstimatedDeliveryDate *time.Time `gorm:"column:order_estimated_delivery_date" json:"order_estimated_delivery_date"`
}

func (Order) TableName() string {
	return "orders"
}

// Delivered reports whether the order reached the customer.
func (o *Order) Delivered() bool {
	return o.OrderStatus == OrderStatusDelivered
}
