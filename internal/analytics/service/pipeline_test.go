package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/entity"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/testutil"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
	"go.uber.org/zap"
)

func TestPipelineRunWritesAllExtracts(t *testing.T) {
	db := testutil.SetupTestDB(t)

	purchase := testutil.MustTime(t, "2024-03-15 10:30:00")
	delivered := testutil.MustTime(t, "2024-03-20 14:00:00")
	estimated := testutil.MustTime(t, "2024-03-25 00:00:00")

	mustCreate(t, db, &entity.Customer{CustomerID: "c1", CustomerUniqueID: "u1", CustomerCity: "sao paulo", CustomerState: "SP"})
	mustCreate(t, db, &entity.Order{
		OrderID: "o1", CustomerID: "c1",
		OrderStatus:                entity.OrderStatusDelivered,
		OrderPurchaseTimestamp:     &purchase,
		OrderDeliveredCustomerDate: &delivered,
		OrderEstimatedDeliveryDate: &estimated,
	})
	mustCreate(t, db, &entity.OrderPayment{
		OrderID: "o1", PaymentSequential: 1,
		PaymentType: "credit_card", PaymentInstallments: 1, PaymentValue: 150,
	})
	mustCreate(t, db, &entity.OrderReview{ReviewID: "r1", OrderID: "o1", ReviewScore: 5})
	mustCreate(t, db, &entity.Seller{SellerID: "s1", SellerCity: "curitiba", SellerState: "PR"})
	mustCreate(t, db, &entity.Product{ProductID: "p1"})
	mustCreate(t, db, &entity.OrderItem{
		OrderID: "o1", OrderItemID: 1, ProductID: "p1", SellerID: "s1", Price: 100, FreightValue: 10,
	})

	dir := t.TempDir()
	services := NewServices(repository.NewRepositories(db), nil)
	pipeline := NewPipeline(services, export.NewCSVSink(dir), zap.NewNop(), "")

	if pipeline.RunID() == "" {
		t.Fatal("pipeline must assign a run id")
	}
	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{
		ExtractOrdersFact, ExtractProductSales, ExtractCustomerSegments,
		ExtractMonthlyMetrics, ExtractSellerPerformance,
	} {
		path := filepath.Join(dir, name+".csv")
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("extract %s not written: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("extract %s is empty", name)
		}
	}
}

func TestPipelineKeepsExplicitRunID(t *testing.T) {
	pipeline := NewPipeline(nil, nil, zap.NewNop(), "run-42")
	if pipeline.RunID() != "run-42" {
		t.Errorf("run id = %q, want run-42", pipeline.RunID())
	}
}
