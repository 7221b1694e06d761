package repository

import (
	"context"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListOrdered returns all reviews in a stable order: creation date first,
// review ID as tie-break. The source contains duplicate reviews for some
// orders; first-occurrence dedup over this ordering picks the earliest
// review deterministically regardless of backend row order.
func (r *ReviewRepository) ListOrdered(ctx context.Context) ([]entity.OrderReview, error) {
	var rows []entity.OrderReview
	err := r.db.WithContext(ctx).
		Order("review_creation_date ASC, review_id ASC").
		Find(&rows).Error
	return rows, err
}
