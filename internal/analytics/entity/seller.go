package entity

// Seller is one row of the sellers table.
type Seller struct {
	SellerID            string `gorm:"column:seller_id;primaryKey" json:"seller_id"`
	SellerZipCodePrefix string `gorm:"column:seller_zip_code_prefix" json:"seller_zip_code_prefix"`
	SellerCity          string `gorm:"column:seller_city" json:"seller_city"`
	SellerState         string `gorm:"column:seller_state" json:"seller_state"`
}

func (Seller) TableName() string {
	return "sellers"
}
