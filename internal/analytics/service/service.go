// Package service implements the five extract builders and the pipeline
// that runs them. Each builder is a pure function of the relational
// source: fetch, join pre-aggregated sides, derive, render a table.
package service

import (
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
)

// Services bundles the extract builders over one set of repositories.
type Services struct {
	OrdersFact   *OrdersFactService
	ProductSales *ProductSalesService
	Segmentation *SegmentationService
	Monthly      *MonthlyMetricsService
	Seller       *SellerPerformanceService
}

// NewServices wires the builders. analysisDate overrides the derived RFM
// analysis date when non-nil (reproducible runs against test fixtures).
func NewServices(repos *repository.Repositories, analysisDate *time.Time) *Services {
	return &Services{
		OrdersFact:   NewOrdersFactService(repos.Order, repos.Payment, repos.Review),
		ProductSales: NewProductSalesService(repos.Item),
		Segmentation: NewSegmentationService(repos.Order, repos.Payment, analysisDate),
		Monthly:      NewMonthlyMetricsService(repos.Order, repos.Payment, repos.Review),
		Seller:       NewSellerPerformanceService(repos.Item, repos.Review),
	}
}
