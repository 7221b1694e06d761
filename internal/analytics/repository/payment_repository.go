package repository

import (
	"context"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// PaymentAggregate is one order's payment rows collapsed to order grain:
// summed value, summed installments, row count, and the maximum payment
// type as the primary method.
type PaymentAggregate struct {
	OrderID            string  `gorm:"column:order_id"`
	TotalPaymentValue  float64 `gorm:"column:total_payment_value"`
	PrimaryPaymentType string  `gorm:"column:primary_payment_type"`
	TotalInstallments  int     `gorm:"column:total_installments"`
	PaymentCount       int     `gorm:"column:payment_count"`
}

// AggregateByOrder returns one row per order with payments summed, so the
// builders can left-join it without duplicating order rows.
func (r *PaymentRepository) AggregateByOrder(ctx context.Context) ([]PaymentAggregate, error) {
	var rows []PaymentAggregate
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			SUM(payment_value) AS total_payment_value,
			MAX(payment_type) AS primary_payment_type,
			SUM(payment_installments) AS total_installments,
			COUNT(*) AS payment_count
		FROM order_payments
		GROUP BY order_id
	`).Scan(&rows).Error
	return rows, err
}
