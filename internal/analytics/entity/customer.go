package entity

// Customer is one row of the customers table. CustomerID is a per-order
// pseudonym; CustomerUniqueID is the stable person identity and may map to
// many CustomerIDs across orders.
type Customer struct {
	CustomerID            string `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	CustomerUniqueID      string `gorm:"column:customer_unique_id" json:"customer_unique_id"`
	CustomerZipCodePrefix string `gorm:"column:customer_zip_code_prefix" json:"customer_zip_code_prefix"`
	CustomerCity          string `gorm:"column:customer_city" json:"customer_city"`
	CustomerState         string `gorm:"column:customer_state" json:"customer_state"`
}

func (Customer) TableName() string {
	return "customers"
}
