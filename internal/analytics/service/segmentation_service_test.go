package service

import (
	"fmt"
	"testing"
	"time"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", value, err)
	}
	return ts
}

func TestComputeSingleCustomerMetrics(t *testing.T) {
	analysis := day(t, "2024-12-02")
	svc := NewSegmentationService(nil, nil, &analysis)

	records := svc.Compute([]CustomerOrder{
		{
			CustomerUniqueID: "cust-1",
			CustomerCity:     "sao paulo",
			CustomerState:    "SP",
			OrderID:          "order-1",
			Purchase:         day(t, "2024-06-01"),
			PaymentValue:     100,
		},
	})

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.Recency != 184 {
		t.Errorf("Recency = %d, want 184", r.Recency)
	}
	if r.Frequency != 1 {
		t.Errorf("Frequency = %d, want 1", r.Frequency)
	}
	if r.Monetary != 100 {
		t.Errorf("Monetary = %v, want 100", r.Monetary)
	}
	if r.AvgOrderValue == nil || *r.AvgOrderValue != 100 {
		t.Errorf("AvgOrderValue = %v, want 100", r.AvgOrderValue)
	}
	if r.TenureDays != 0 {
		t.Errorf("TenureDays = %d, want 0", r.TenureDays)
	}
	// A one-customer population cannot be split into quintiles: recency
	// and monetary scores are undefined and the segment is Unknown.
	if r.RScore != nil || r.MScore != nil {
		t.Errorf("scores = %v/%v, want undefined", r.RScore, r.MScore)
	}
	if r.Segment != SegmentUnknown || r.RFMScore != SegmentUnknown {
		t.Errorf("segment/code = %q/%q, want Unknown", r.Segment, r.RFMScore)
	}
}

func TestComputeDerivesAnalysisDateFromPopulation(t *testing.T) {
	svc := NewSegmentationService(nil, nil, nil)

	records := svc.Compute([]CustomerOrder{
		{CustomerUniqueID: "a", OrderID: "o1", Purchase: day(t, "2024-06-01"), PaymentValue: 50},
		{CustomerUniqueID: "b", OrderID: "o2", Purchase: day(t, "2024-06-11"), PaymentValue: 80},
	})

	// Analysis date anchors to the latest purchase + 1 day, so the most
	// recent customer always has recency 1.
	for _, r := range records {
		switch r.CustomerUniqueID {
		case "a":
			if r.Recency != 11 {
				t.Errorf("recency(a) = %d, want 11", r.Recency)
			}
		case "b":
			if r.Recency != 1 {
				t.Errorf("recency(b) = %d, want 1", r.Recency)
			}
		}
	}
}

func TestComputePopulationScoring(t *testing.T) {
	analysis := day(t, "2025-01-01")
	svc := NewSegmentationService(nil, nil, &analysis)

	// Ten customers: recency and monetary spread evenly, frequency all
	// tied at one order. Rank-based frequency scoring must still produce
	// defined scores despite the ties.
	var orders []CustomerOrder
	for i := 0; i < 10; i++ {
		orders = append(orders, CustomerOrder{
			CustomerUniqueID: fmt.Sprintf("cust-%02d", i),
			OrderID:          fmt.Sprintf("order-%02d", i),
			Purchase:         day(t, "2024-12-01").AddDate(0, 0, -10*i),
			PaymentValue:     float64(100 + 50*i),
		})
	}

	records := svc.Compute(orders)
	if len(records) != 10 {
		t.Fatalf("got %d records, want 10", len(records))
	}

	for _, r := range records {
		if r.RScore == nil || r.FScore == nil || r.MScore == nil {
			t.Fatalf("customer %s has undefined scores", r.CustomerUniqueID)
		}
		if r.Segment == SegmentUnknown {
			t.Errorf("customer %s segment = Unknown, want defined", r.CustomerUniqueID)
		}
		if len(r.RFMScore) != 3 {
			t.Errorf("customer %s rfm code = %q, want 3 digits", r.CustomerUniqueID, r.RFMScore)
		}
		if r.Recency < 0 || r.Frequency < 1 {
			t.Errorf("customer %s has recency %d, frequency %d", r.CustomerUniqueID, r.Recency, r.Frequency)
		}
	}

	// cust-00 purchased most recently and spent the least; recency is
	// inverted, monetary is not.
	first := records[0]
	if first.CustomerUniqueID != "cust-00" {
		t.Fatalf("records not sorted by customer id: first = %s", first.CustomerUniqueID)
	}
	if *first.RScore != 5 {
		t.Errorf("most recent customer RScore = %d, want 5", *first.RScore)
	}
	if *first.MScore != 1 {
		t.Errorf("lowest spender MScore = %d, want 1", *first.MScore)
	}
	last := records[9]
	if *last.RScore != 1 {
		t.Errorf("least recent customer RScore = %d, want 1", *last.RScore)
	}
	if *last.MScore != 5 {
		t.Errorf("highest spender MScore = %d, want 5", *last.MScore)
	}
}

func TestComputeFrequencyRoundTrip(t *testing.T) {
	svc := NewSegmentationService(nil, nil, nil)

	orders := []CustomerOrder{
		{CustomerUniqueID: "a", OrderID: "o1", Purchase: day(t, "2024-01-01"), PaymentValue: 10},
		{CustomerUniqueID: "a", OrderID: "o2", Purchase: day(t, "2024-02-01"), PaymentValue: 20},
		{CustomerUniqueID: "a", OrderID: "o3", Purchase: day(t, "2024-03-01"), PaymentValue: 30},
		{CustomerUniqueID: "b", OrderID: "o4", Purchase: day(t, "2024-01-15"), PaymentValue: 40},
		{CustomerUniqueID: "c", OrderID: "o5", Purchase: day(t, "2024-02-15"), PaymentValue: 50},
	}

	records := svc.Compute(orders)

	total := 0
	for _, r := range records {
		total += r.Frequency
	}
	if total != len(orders) {
		t.Errorf("sum of frequencies = %d, want %d delivered orders", total, len(orders))
	}

	for _, r := range records {
		if r.CustomerUniqueID != "a" {
			continue
		}
		if r.Monetary != 60 {
			t.Errorf("monetary(a) = %v, want 60", r.Monetary)
		}
		if r.AvgOrderValue == nil || *r.AvgOrderValue != 20 {
			t.Errorf("avg order value(a) = %v, want 20", r.AvgOrderValue)
		}
		if r.TenureDays != 60 {
			t.Errorf("tenure(a) = %d, want 60", r.TenureDays)
		}
		if !r.FirstPurchase.Equal(day(t, "2024-01-01")) || !r.LastPurchase.Equal(day(t, "2024-03-01")) {
			t.Errorf("purchase window = %v..%v", r.FirstPurchase, r.LastPurchase)
		}
	}
}
