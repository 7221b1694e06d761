package service

import (
	"context"
	"testing"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/testutil"
	"gorm.io/gorm"
)

func newOrdersFactService(db *gorm.DB) *OrdersFactService {
	repos := repository.NewRepositories(db)
	return NewOrdersFactService(repos.Order, repos.Payment, repos.Review)
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("Failed to seed %T: %v", value, err)
	}
}

func TestOrdersFactBuild(t *testing.T) {
	db := testutil.SetupTestDB(t)

	purchase := testutil.MustTime(t, "2024-03-15 10:30:00")
	delivered := testutil.MustTime(t, "2024-03-20 14:00:00")
	estimated := testutil.MustTime(t, "2024-03-25 00:00:00")

	mustCreate(t, db, &entity.Customer{
		CustomerID:            "c1",
		CustomerUniqueID:      "u1",
		CustomerZipCodePrefix: "01310",
		CustomerCity:          "sao paulo",
		CustomerState:         "SP",
	})
	mustCreate(t, db, &entity.Order{
		OrderID:                    "o1",
		CustomerID:                 "c1",
		OrderStatus:                entity.OrderStatusDelivered,
		OrderPurchaseTimestamp:     &purchase,
		OrderDeliveredCustomerDate: &delivered,
		OrderEstimatedDeliveryDate: &estimated,
	})
	mustCreate(t, db, &entity.OrderPayment{
		OrderID: "o1", PaymentSequential: 1,
		PaymentType: "credit_card", PaymentInstallments: 3, PaymentValue: 120.50,
	})
	mustCreate(t, db, &entity.OrderPayment{
		OrderID: "o1", PaymentSequential: 2,
		PaymentType: "voucher", PaymentInstallments: 1, PaymentValue: 29.50,
	})
	mustCreate(t, db, &entity.OrderReview{
		ReviewID: "r1", OrderID: "o1", ReviewScore: 4,
		ReviewCreationDate: testutil.TimePtr(testutil.MustTime(t, "2024-03-21 09:00:00")),
	})

	rows, err := newOrdersFactService(db).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	r := rows[0]
	if r.CustomerUniqueID == nil || *r.CustomerUniqueID != "u1" {
		t.Errorf("customer_unique_id = %v, want u1", r.CustomerUniqueID)
	}
	if r.CustomerCity == nil || *r.CustomerCity != "sao paulo" {
		t.Errorf("customer_city = %v, want sao paulo", r.CustomerCity)
	}
	if r.TotalPaymentValue == nil || *r.TotalPaymentValue != 150 {
		t.Errorf("total_payment_value = %v, want 150", r.TotalPaymentValue)
	}
	if r.TotalInstallments == nil || *r.TotalInstallments != 4 {
		t.Errorf("total_installments = %v, want 4", r.TotalInstallments)
	}
	if r.PaymentCount == nil || *r.PaymentCount != 2 {
		t.Errorf("payment_count = %v, want 2", r.PaymentCount)
	}
	if r.ReviewScore == nil || *r.ReviewScore != 4 {
		t.Errorf("review_score = %v, want 4", r.ReviewScore)
	}
	if r.OrderYear == nil || *r.OrderYear != 2024 {
		t.Errorf("order_year = %v, want 2024", r.OrderYear)
	}
	if r.OrderMonth == nil || *r.OrderMonth != "2024-03" {
		t.Errorf("order_month = %v, want 2024-03", r.OrderMonth)
	}
	if r.OrderQuarter == nil || *r.OrderQuarter != "2024-Q1" {
		t.Errorf("order_quarter = %v, want 2024-Q1", r.OrderQuarter)
	}
	if r.Delivery.ActualDays == nil || *r.Delivery.ActualDays != 5 {
		t.Errorf("actual_delivery_days = %v, want 5", r.Delivery.ActualDays)
	}
	if r.Delivery.EstimatedDays == nil || *r.Delivery.EstimatedDays != 9 {
		t.Errorf("estimated_delivery_days = %v, want 9", r.Delivery.EstimatedDays)
	}
	if r.Delivery.DelayDays == nil || *r.Delivery.DelayDays != -4 {
		t.Errorf("delivery_delay_days = %v, want -4", r.Delivery.DelayDays)
	}
	if r.Delivery.OnTimeLabel == nil || *r.Delivery.OnTimeLabel != "On Time" {
		t.Errorf("on_time_delivery = %v, want On Time", r.Delivery.OnTimeLabel)
	}
}

func TestOrdersFactKeepsOrderWithoutCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)

	purchase := testutil.MustTime(t, "2024-01-05 08:00:00")
	mustCreate(t, db, &entity.Order{
		OrderID:                "o1",
		CustomerID:             "ghost",
		OrderStatus:            entity.OrderStatusShipped,
		OrderPurchaseTimestamp: &purchase,
	})

	rows, err := newOrdersFactService(db).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("order without a customer row must survive the join, got %d rows", len(rows))
	}

	r := rows[0]
	if r.CustomerUniqueID != nil || r.CustomerCity != nil || r.CustomerState != nil {
		t.Errorf("unmatched customer fields must stay absent: %+v", r)
	}
	if r.TotalPaymentValue != nil || r.ReviewScore != nil {
		t.Errorf("unmatched payment/review fields must stay absent: %+v", r)
	}
	// Non-delivered orders carry no delivery durations.
	if r.Delivery.ActualDays != nil || r.Delivery.OnTimeLabel != nil {
		t.Errorf("shipped order must have no delivery metrics: %+v", r.Delivery)
	}
}

func TestOrdersFactPicksEarliestReview(t *testing.T) {
	db := testutil.SetupTestDB(t)

	purchase := testutil.MustTime(t, "2024-02-01 12:00:00")
	mustCreate(t, db, &entity.Customer{CustomerID: "c1", CustomerUniqueID: "u1"})
	mustCreate(t, db, &entity.Order{
		OrderID:                "o1",
		CustomerID:             "c1",
		OrderStatus:            entity.OrderStatusDelivered,
		OrderPurchaseTimestamp: &purchase,
	})
	// Later review inserted first; the earlier creation date must win.
	mustCreate(t, db, &entity.OrderReview{
		ReviewID: "r2", OrderID: "o1", ReviewScore: 1,
		ReviewCreationDate: testutil.TimePtr(testutil.MustTime(t, "2024-02-10 00:00:00")),
	})
	mustCreate(t, db, &entity.OrderReview{
		ReviewID: "r1", OrderID: "o1", ReviewScore: 5,
		ReviewCreationDate: testutil.TimePtr(testutil.MustTime(t, "2024-02-05 00:00:00")),
	})

	rows, err := newOrdersFactService(db).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rows[0].ReviewScore == nil || *rows[0].ReviewScore != 5 {
		t.Errorf("review_score = %v, want 5 from the earliest review", rows[0].ReviewScore)
	}
}

func TestOrdersFactReviewTieBrokenByID(t *testing.T) {
	db := testutil.SetupTestDB(t)

	purchase := testutil.MustTime(t, "2024-02-01 12:00:00")
	created := testutil.MustTime(t, "2024-02-05 00:00:00")
	mustCreate(t, db, &entity.Order{
		OrderID:                "o1",
		CustomerID:             "c1",
		OrderStatus:            entity.OrderStatusDelivered,
		OrderPurchaseTimestamp: &purchase,
	})
	mustCreate(t, db, &entity.OrderReview{
		ReviewID: "zz", OrderID: "o1", ReviewScore: 1, ReviewCreationDate: &created,
	})
	mustCreate(t, db, &entity.OrderReview{
		ReviewID: "aa", OrderID: "o1", ReviewScore: 3, ReviewCreationDate: &created,
	})

	rows, err := newOrdersFactService(db).Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if rows[0].ReviewScore == nil || *rows[0].ReviewScore != 3 {
		t.Errorf("review_score = %v, want 3 from the lowest review id", rows[0].ReviewScore)
	}
}
