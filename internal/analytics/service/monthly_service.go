package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/stats"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/temporal"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
)

// MonthlyMetricsService builds the month-grain rollup over delivered
// orders, including the new-vs-returning customer split.
type MonthlyMetricsService struct {
	orderRepo   *repository.OrderRepository
	paymentRepo *repository.PaymentRepository
	reviewRepo  *repository.ReviewRepository
}

func NewMonthlyMetricsService(
	orderRepo *repository.OrderRepository,
	paymentRepo *repository.PaymentRepository,
	reviewRepo *repository.ReviewRepository,
) *MonthlyMetricsService {
	return &MonthlyMetricsService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		reviewRepo:  reviewRepo,
	}
}

// DeliveredOrder is one delivered order attributed to a stable customer
// identity, the monthly aggregation input grain.
type DeliveredOrder struct {
	OrderID          string
	CustomerUniqueID string
	Purchase         time.Time
	PaymentValue     *float64
	ReviewScore      *int
	DeliveryDays     *int
	OnTime           *bool
}

// MonthlyMetricsRow is one output row of the monthly_metrics extract.
// Rate and mean fields are rounded for presentation only.
type MonthlyMetricsRow struct {
	OrderMonth         string
	TotalOrders        int
	UniqueCustomers    int
	TotalRevenue       float64
	AvgOrderValue      *float64
	AvgReviewScore     *float64
	AvgDeliveryDays    *float64
	OnTimeRate         *float64
	MonthDate          time.Time
	NewCustomers       int
	ReturningCustomers int
}

func (s *MonthlyMetricsService) Build(ctx context.Context) ([]MonthlyMetricsRow, error) {
	orders, err := s.orderRepo.ListWithCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	payments, err := s.paymentRepo.AggregateByOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate payments: %w", err)
	}
	reviews, err := s.reviewRepo.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	paymentByOrder := indexBy(payments, func(p repository.PaymentAggregate) string { return p.OrderID })
	reviewByOrder := firstBy(reviews, func(r entity.OrderReview) string { return r.OrderID })

	var input []DeliveredOrder
	for _, o := range orders {
		if !o.Delivered() || o.CustomerUniqueID == nil || o.OrderPurchaseTimestamp == nil {
			continue
		}
		do := DeliveredOrder{
			OrderID:          o.OrderID,
			CustomerUniqueID: *o.CustomerUniqueID,
			Purchase:         *o.OrderPurchaseTimestamp,
		}
		if p, ok := paymentByOrder[o.OrderID]; ok {
			v := p.TotalPaymentValue
			do.PaymentValue = &v
		}
		if rv, ok := reviewByOrder[o.OrderID]; ok {
			score := rv.ReviewScore
			do.ReviewScore = &score
		}
		m := temporal.DeriveDelivery(true, o.OrderPurchaseTimestamp, o.OrderDeliveredCustomerDate, o.OrderEstimatedDeliveryDate)
		if m.ActualDays != nil {
			do.DeliveryDays = m.ActualDays
			onTime := *m.DelayDays <= 0
			do.OnTime = &onTime
		}
		input = append(input, do)
	}

	return AggregateMonthly(input)
}

// AggregateMonthly rolls delivered orders up to calendar months of purchase.
func AggregateMonthly(orders []DeliveredOrder) ([]MonthlyMetricsRow, error) {
	type accumulator struct {
		orders         int
		customers      map[string]struct{}
		revenue        float64
		revenueCount   int
		reviewSum      int
		reviewCount    int
		deliverySum    int
		deliveryCount  int
		onTimeHits     int
		onTimeEligible int
	}

	byMonth := make(map[string]*accumulator)
	// First delivered-purchase month per customer over the entire history,
	// computed before any per-month slicing.
	firstMonth := make(map[string]string)
	for _, o := range orders {
		month := temporal.YearMonth(o.Purchase)
		acc, ok := byMonth[month]
		if !ok {
			acc = &accumulator{customers: make(map[string]struct{})}
			byMonth[month] = acc
		}
		acc.orders++
		acc.customers[o.CustomerUniqueID] = struct{}{}
		if o.PaymentValue != nil {
			acc.revenue += *o.PaymentValue
			acc.revenueCount++
		}
		if o.ReviewScore != nil {
			acc.reviewSum += *o.ReviewScore
			acc.reviewCount++
		}
		if o.DeliveryDays != nil {
			acc.deliverySum += *o.DeliveryDays
			acc.deliveryCount++
		}
		if o.OnTime != nil {
			acc.onTimeEligible++
			if *o.OnTime {
				acc.onTimeHits++
			}
		}

		if cur, ok := firstMonth[o.CustomerUniqueID]; !ok || month < cur {
			firstMonth[o.CustomerUniqueID] = month
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	rows := make([]MonthlyMetricsRow, 0, len(months))
	for _, month := range months {
		acc := byMonth[month]
		monthDate, err := temporal.MonthStart(month)
		if err != nil {
			return nil, fmt.Errorf("parse month %q: %w", month, err)
		}

		row := MonthlyMetricsRow{
			OrderMonth:      month,
			TotalOrders:     acc.orders,
			UniqueCustomers: len(acc.customers),
			TotalRevenue:    stats.Round(acc.revenue, 2),
			MonthDate:       monthDate,
		}
		if acc.revenueCount > 0 {
			avg := stats.Round(acc.revenue/float64(acc.revenueCount), 2)
			row.AvgOrderValue = &avg
		}
		if acc.reviewCount > 0 {
			avg := stats.Round(float64(acc.reviewSum)/float64(acc.reviewCount), 2)
			row.AvgReviewScore = &avg
		}
		if acc.deliveryCount > 0 {
			avg := stats.Round(float64(acc.deliverySum)/float64(acc.deliveryCount), 1)
			row.AvgDeliveryDays = &avg
		}
		if acc.onTimeEligible > 0 {
			rate := stats.Round(float64(acc.onTimeHits)/float64(acc.onTimeEligible)*100, 2)
			row.OnTimeRate = &rate
		}

		for id := range acc.customers {
			if firstMonth[id] == month {
				row.NewCustomers++
			}
		}
		row.ReturningCustomers = row.UniqueCustomers - row.NewCustomers

		rows = append(rows, row)
	}
	return rows, nil
}

// MonthlyMetricsTable renders the rows as the monthly_metrics extract.
func MonthlyMetricsTable(rows []MonthlyMetricsRow) *export.Table {
	t := export.NewTable(
		"order_month", "total_orders", "unique_customers",
		"total_revenue", "avg_order_value", "avg_review_score",
		"avg_delivery_days", "on_time_delivery_rate",
		"month_date", "new_customers", "returning_customers",
	)
	for _, r := range rows {
		monthDate := r.MonthDate
		t.Append(
			r.OrderMonth,
			fmt.Sprintf("%d", r.TotalOrders),
			fmt.Sprintf("%d", r.UniqueCustomers),
			export.FloatVal(r.TotalRevenue),
			export.Float(r.AvgOrderValue),
			export.Float(r.AvgReviewScore),
			export.Float(r.AvgDeliveryDays),
			export.Float(r.OnTimeRate),
			export.Date(&monthDate),
			fmt.Sprintf("%d", r.NewCustomers),
			fmt.Sprintf("%d", r.ReturningCustomers),
		)
	}
	return t
}
