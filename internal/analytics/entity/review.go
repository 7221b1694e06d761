package entity

import "time"

// OrderReview is one row of the order_reviews table. Nominally one per
// order, but the source contains duplicates for some order IDs; readers
// collapse them deterministically (see repository.ReviewRepository).
type OrderReview struct {
	ReviewID           string     `gorm:"column:review_id;primaryKey" json:"review_id"`
	OrderID            string     `gorm:"column:order_id" json:"order_id"`
	ReviewScore        int        `gorm:"column:review_score" json:"review_score"`
	ReviewCreationDate *time.Time `gorm:"column:review_creation_date" json:"review_creation_date"`
}

func (OrderReview) TableName() string {
	return "order_reviews"
}
