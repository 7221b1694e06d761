package entity

// OrderPayment is one row of the order_payments table. An order may have
// several payment rows (installments, mixed methods).
type OrderPayment struct {
	OrderID             string  `gorm:"column:order_id;primaryKey" json:"order_id"`
	PaymentSequential   int     `gorm:"column:payment_sequential;primaryKey" json:"payment_sequential"`
	PaymentType         string  `gorm:"column:payment_type" json:"payment_type"`
	PaymentInstallments int     `gorm:"column:payment_installments" json:"payment_installments"`
	PaymentValue        float64 `gorm:"column:payment_value" json:"payment_value"`
}

func (OrderPayment) TableName() string {
	return "order_payments"
}
