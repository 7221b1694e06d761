// Package repository is the read-only adapter over the relational source.
// Each repository owns the queries for one table family; aggregation to the
// correct grain (payments per order) happens here so the builders join
// pre-aggregated results.
package repository

import "gorm.io/gorm"

// Repositories bundles every source repository over one connection.
type Repositories struct {
	Order   *OrderRepository
	Payment *PaymentRepository
	Review  *ReviewRepository
	Item    *ItemRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:   NewOrderRepository(db),
		Payment: NewPaymentRepository(db),
		Review:  NewReviewRepository(db),
		Item:    NewItemRepository(db),
	}
}
