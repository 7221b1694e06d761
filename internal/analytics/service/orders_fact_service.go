package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/temporal"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
)

// OrdersFactService builds the order-grain fact table: one row per order
// with customer reference data, payment aggregates, the deduplicated
// review, calendar buckets, and delivery durations.
type OrdersFactService struct {
	orderRepo   *repository.OrderRepository
	paymentRepo *repository.PaymentRepository
	reviewRepo  *repository.ReviewRepository
}

func NewOrdersFactService(
	orderRepo *repository.OrderRepository,
	paymentRepo *repository.PaymentRepository,
	reviewRepo *repository.ReviewRepository,
) *OrdersFactService {
	return &OrdersFactService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		reviewRepo:  reviewRepo,
	}
}

// OrdersFactRow is one output row of the orders_fact extract.
type OrdersFactRow struct {
	OrderID                    string
	CustomerID                 string
	CustomerUniqueID           *string
	OrderStatus                string
	OrderPurchaseTimestamp     *time.Time
	OrderApprovedAt            *time.Time
	OrderDeliveredCarrierDate  *time.Time
	OrderDeliveredCustomerDate *time.Time
	OrderEstimatedDeliveryDate *time.Time
	CustomerCity               *string
	CustomerState              *string
	CustomerZipCodePrefix      *string
	TotalPaymentValue          *float64
	PrimaryPaymentType         *string
	TotalInstallments          *int
	PaymentCount               *int
	ReviewScore                *int
	ReviewCreationDate         *time.Time
	OrderYear                  *int
	OrderMonth                 *string
	OrderQuarter               *string
	OrderDayOfWeek             *string
	Delivery                   temporal.DeliveryMetrics
}

func (s *OrdersFactService) Build(ctx context.Context) ([]OrdersFactRow, error) {
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

	rows := make([]OrdersFactRow, 0, len(orders))
	for _, o := range orders {
		row := OrdersFactRow{
			OrderID:                    o.OrderID,
			CustomerID:                 o.CustomerID,
			CustomerUniqueID:           o.CustomerUniqueID,
			OrderStatus:                o.OrderStatus,
			OrderPurchaseTimestamp:     o.OrderPurchaseTimestamp,
			OrderApprovedAt:            o.OrderApprovedAt,
			OrderDeliveredCarrierDate:  o.OrderDeliveredCarrierDate,
			OrderDeliveredCustomerDate: o.OrderDeliveredCustomerDate,
			OrderEstimatedDeliveryDate: o.OrderEstimatedDeliveryDate,
			CustomerCity:               o.CustomerCity,
			CustomerState:              o.CustomerState,
			CustomerZipCodePrefix:      o.CustomerZipCodePrefix,
		}

		if p, ok := paymentByOrder[o.OrderID]; ok {
			row.TotalPaymentValue = &p.TotalPaymentValue
			row.PrimaryPaymentType = &p.PrimaryPaymentType
			row.TotalInstallments = &p.TotalInstallments
			row.PaymentCount = &p.PaymentCount
		}
		if rv, ok := reviewByOrder[o.OrderID]; ok {
			score := rv.ReviewScore
			row.ReviewScore = &score
			row.ReviewCreationDate = rv.ReviewCreationDate
		}

		if ts := o.OrderPurchaseTimestamp; ts != nil {
			year := temporal.Year(*ts)
			month := temporal.YearMonth(*ts)
			quarter := temporal.YearQuarter(*ts)
			weekday := temporal.WeekdayName(*ts)
			row.OrderYear = &year
			row.OrderMonth = &month
			row.OrderQuarter = &quarter
			row.OrderDayOfWeek = &weekday
		}

		row.Delivery = temporal.DeriveDelivery(
			o.Delivered(),
			o.OrderPurchaseTimestamp,
			o.OrderDeliveredCustomerDate,
			o.OrderEstimatedDeliveryDate,
		)

		rows = append(rows, row)
	}
	return rows, nil
}

// OrdersFactTable renders the rows as the orders_fact extract.
func OrdersFactTable(rows []OrdersFactRow) *export.Table {
	t := export.NewTable(
		"order_id", "customer_id", "customer_unique_id", "order_status",
		"order_purchase_timestamp", "order_approved_at", "order_delivered_carrier_date",
		"order_delivered_customer_date", "order_estimated_delivery_date",
		"customer_city", "customer_state", "customer_zip_code_prefix",
		"total_payment_value", "primary_payment_type", "total_installments", "payment_count",
		"review_score", "review_creation_date",
		"order_year", "order_month", "order_quarter", "order_day_of_week",
		"actual_delivery_days", "estimated_delivery_days", "delivery_delay_days", "on_time_delivery",
	)
	for _, r := range rows {
		t.Append(
			r.OrderID, r.CustomerID, export.String(r.CustomerUniqueID), r.OrderStatus,
			export.Timestamp(r.OrderPurchaseTimestamp), export.Timestamp(r.OrderApprovedAt),
			export.Timestamp(r.OrderDeliveredCarrierDate), export.Timestamp(r.OrderDeliveredCustomerDate),
			export.Timestamp(r.OrderEstimatedDeliveryDate),
			export.String(r.CustomerCity), export.String(r.CustomerState), export.String(r.CustomerZipCodePrefix),
			export.Float(r.TotalPaymentValue), export.String(r.PrimaryPaymentType),
			export.Int(r.TotalInstallments), export.Int(r.PaymentCount),
			export.Int(r.ReviewScore), export.Timestamp(r.ReviewCreationDate),
			export.Int(r.OrderYear), export.String(r.OrderMonth), export.String(r.OrderQuarter),
			export.String(r.OrderDayOfWeek),
			export.Int(r.Delivery.ActualDays), export.Int(r.Delivery.EstimatedDays),
			export.Int(r.Delivery.DelayDays), export.String(r.Delivery.OnTimeLabel),
		)
	}
	return t
}
