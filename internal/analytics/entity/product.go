package entity

// Product is one row of the products table. The category name is in the
// source locale and may be absent.
type Product struct {
	ProductID           string   `gorm:"column:product_id;primaryKey" json:"product_id"`
	ProductCategoryName *string  `gorm:"column:product_category_name" json:"product_category_name"`
	ProductWeightG      *float64 `gorm:"column:product_weight_g" json:"product_weight_g"`
	ProductLengthCm     *float64 `gorm:"column:product_length_cm" json:"product_length_cm"`
	ProductHeightCm     *float64 `gorm:"column:product_height_cm" json:"product_height_cm"`
	ProductWidthCm      *float64 `gorm:"column:product_width_cm" json:"product_width_cm"`
	ProductPhotosQty    *int     `gorm:"column:product_photos_qty" json:"product_photos_qty"`
}

func (Product) TableName() string {
	return "products"
}

// CategoryTranslation maps a source-locale category name to English.
type CategoryTranslation struct {
	ProductCategoryName        string `gorm:"column:product_category_name;primaryKey" json:"product_category_name"`
	ProductCategoryNameEnglish string `gorm:"column:product_category_name_english" json:"product_category_name_english"`
}

func (CategoryTranslation) TableName() string {
	return "product_category_translation"
}
