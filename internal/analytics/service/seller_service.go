package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/stats"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/temporal"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
)

// Composite score weights.
const (
	revenueWeight  = 0.3
	reviewWeight   = 0.4
	deliveryWeight = 0.3
)

// SellerPerformanceService builds the seller-grain composite ranking over
// sellers with at least one delivered order.
type SellerPerformanceService struct {
	itemRepo   *repository.ItemRepository
	reviewRepo *repository.ReviewRepository
}

func NewSellerPerformanceService(
	itemRepo *repository.ItemRepository,
	reviewRepo *repository.ReviewRepository,
) *SellerPerformanceService {
	return &SellerPerformanceService{itemRepo: itemRepo, reviewRepo: reviewRepo}
}

// SellerPerformanceRow is one output row of the seller_performance
// extract. Review and delivery fields stay nil for sellers with no joined
// rows; a nil sub-score leaves the composite and rank nil.
type SellerPerformanceRow struct {
	SellerID        string
	TotalOrders     int
	TotalRevenue    float64
	TotalFreight    float64
	SellerCity      string
	SellerState     string
	AvgReviewScore  *float64
	ReviewCount     *int
	OnTimeRate      *float64
	AvgDeliveryDays *float64
	RevenueScore    float64
	ReviewScore     *float64
	DeliveryScore   *float64
	CompositeScore  *float64
	SellerRank      *int
}

func (s *SellerPerformanceService) Build(ctx context.Context) ([]SellerPerformanceRow, error) {
	items, err := s.itemRepo.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	reviews, err := s.reviewRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviewByOrder := firstBy(reviews, func(r entity.OrderReview) string { return r.OrderID })
	return Score(items, reviewByOrder), nil
}

// Score aggregates order items to seller grain and computes the weighted
// composite ranking. Revenue and delivery stats come from delivered
// orders; reviews are joined through items regardless of order status and
// deduplicated per (order, seller), since one order may span sellers.
func Score(items []repository.ItemDetail, reviewByOrder map[string]entity.OrderReview) []SellerPerformanceRow {
	type orderSeller struct {
		orderID  string
		sellerID string
	}
	type accumulator struct {
		city, state    string
		orders         map[string]struct{}
		revenue        float64
		freight        float64
		reviewSum      int
		reviewCount    int
		deliverySum    int
		deliveryCount  int
		onTimeHits     int
		onTimeEligible int
	}

	bySeller := make(map[string]*accumulator)
	seenReview := make(map[orderSeller]struct{})
	seenDelivery := make(map[orderSeller]struct{})

	// Seller population and revenue: delivered items only.
	for _, it := range items {
		if !it.Delivered() {
			continue
		}
		acc, ok := bySeller[it.SellerID]
		if !ok {
			acc = &accumulator{orders: make(map[string]struct{})}
			if it.SellerCity != nil {
				acc.city = *it.SellerCity
			}
			if it.SellerState != nil {
				acc.state = *it.SellerState
			}
			bySeller[it.SellerID] = acc
		}
		acc.orders[it.OrderID] = struct{}{}
		acc.revenue += it.Price
		acc.freight += it.FreightValue

		key := orderSeller{it.OrderID, it.SellerID}
		if _, dup := seenDelivery[key]; !dup {
			m := temporal.DeriveDelivery(true, it.OrderPurchaseTimestamp, it.OrderDeliveredCustomerDate, it.OrderEstimatedDeliveryDate)
			if m.ActualDays != nil {
				seenDelivery[key] = struct{}{}
				acc.deliverySum += *m.ActualDays
				acc.deliveryCount++
				acc.onTimeEligible++
				if *m.DelayDays <= 0 {
					acc.onTimeHits++
				}
			}
		}
	}

	// Reviews join through items for any order status, but only sellers in
	// the delivered population keep them.
	for _, it := range items {
		acc, ok := bySeller[it.SellerID]
		if !ok {
			continue
		}
		rv, ok := reviewByOrder[it.OrderID]
		if !ok {
			continue
		}
		key := orderSeller{it.OrderID, it.SellerID}
		if _, dup := seenReview[key]; dup {
			continue
		}
		seenReview[key] = struct{}{}
		acc.reviewSum += rv.ReviewScore
		acc.reviewCount++
	}

	sellerIDs := make([]string, 0, len(bySeller))
	for id := range bySeller {
		sellerIDs = append(sellerIDs, id)
	}
	sort.Strings(sellerIDs)

	rows := make([]SellerPerformanceRow, len(sellerIDs))
	revenues := make([]float64, len(sellerIDs))
	for i, id := range sellerIDs {
		acc := bySeller[id]
		row := SellerPerformanceRow{
			SellerID:     id,
			TotalOrders:  len(acc.orders),
			TotalRevenue: acc.revenue,
			TotalFreight: acc.freight,
			SellerCity:   acc.city,
			SellerState:  acc.state,
		}
		if acc.reviewCount > 0 {
			avg := float64(acc.reviewSum) / float64(acc.reviewCount)
			count := acc.reviewCount
			row.AvgReviewScore = &avg
			row.ReviewCount = &count
		}
		if acc.deliveryCount > 0 {
			avgDays := float64(acc.deliverySum) / float64(acc.deliveryCount)
			rate := float64(acc.onTimeHits) / float64(acc.onTimeEligible)
			row.AvgDeliveryDays = &avgDays
			row.OnTimeRate = &rate
		}
		rows[i] = row
		revenues[i] = acc.revenue
	}

	revenueScores := stats.MinMaxScale100(revenues)
	composites := make([]float64, 0, len(rows))
	compositeIdx := make([]int, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		r.RevenueScore = revenueScores[i]
		if r.AvgReviewScore != nil {
			score := *r.AvgReviewScore / 5 * 100
			r.ReviewScore = &score
		}
		if r.OnTimeRate != nil {
			score := *r.OnTimeRate * 100
			r.DeliveryScore = &score
		}
		if r.ReviewScore != nil && r.DeliveryScore != nil {
			composite := stats.Round(
				revenueWeight*r.RevenueScore+reviewWeight**r.ReviewScore+deliveryWeight**r.DeliveryScore, 2)
			r.CompositeScore = &composite
			composites = append(composites, composite)
			compositeIdx = append(compositeIdx, i)
		}
	}

	ranks := stats.MinRankDesc(composites)
	for pos, i := range compositeIdx {
		rank := ranks[pos]
		rows[i].SellerRank = &rank
	}

	// Presentation rounding, after all scores are derived.
	for i := range rows {
		r := &rows[i]
		r.TotalRevenue = stats.Round(r.TotalRevenue, 2)
		r.TotalFreight = stats.Round(r.TotalFreight, 2)
		if r.AvgReviewScore != nil {
			v := stats.Round(*r.AvgReviewScore, 2)
			r.AvgReviewScore = &v
		}
		if r.OnTimeRate != nil {
			v := stats.Round(*r.OnTimeRate*100, 2)
			r.OnTimeRate = &v
		}
		if r.AvgDeliveryDays != nil {
			v := stats.Round(*r.AvgDeliveryDays, 1)
			r.AvgDeliveryDays = &v
		}
	}
	return rows
}

// SellerPerformanceTable renders the rows as the seller_performance
// extract.
func SellerPerformanceTable(rows []SellerPerformanceRow) *export.Table {
	t := export.NewTable(
		"seller_id", "total_orders", "total_revenue", "total_freight",
		"seller_city", "seller_state",
		"avg_review_score", "review_count", "on_time_rate", "avg_delivery_days",
		"revenue_score", "review_score_normalized", "delivery_score",
		"composite_score", "seller_rank",
	)
	for _, r := range rows {
		t.Append(
			r.SellerID,
			fmt.Sprintf("%d", r.TotalOrders),
			export.FloatVal(r.TotalRevenue),
			export.FloatVal(r.TotalFreight),
			r.SellerCity, r.SellerState,
			export.Float(r.AvgReviewScore), export.Int(r.ReviewCount),
			export.Float(r.OnTimeRate), export.Float(r.AvgDeliveryDays),
			export.FloatVal(r.RevenueScore), export.Float(r.ReviewScore), export.Float(r.DeliveryScore),
			export.Float(r.CompositeScore), export.Int(r.SellerRank),
		)
	}
	return t
}
