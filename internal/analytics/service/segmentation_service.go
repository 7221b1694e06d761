package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/stats"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/temporal"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
)

// rfmQuantiles is the number of score buckets per RFM dimension.
const rfmQuantiles = 5

// SegmentationService computes RFM metrics and quantile-based segment
// assignment over customers with at least one delivered order.
type SegmentationService struct {
	orderRepo   *repository.OrderRepository
	paymentRepo *repository.PaymentRepository

	// analysisDate overrides the derived analysis date when non-nil.
	analysisDate *time.Time
}

func NewSegmentationService(
	orderRepo *repository.OrderRepository,
	paymentRepo *repository.PaymentRepository,
	analysisDate *time.Time,
) *SegmentationService {
	return &SegmentationService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		analysisDate: analysisDate,
	}
}

// CustomerOrder is one delivered order attributed to a stable customer
// identity, the segmentation input grain.
type CustomerOrder struct {
	CustomerUniqueID string
	CustomerCity     string
	CustomerState    string
	OrderID          string
	Purchase         time.Time
	PaymentValue     float64
}

// RFMRecord is one output row of the customer_segments extract.
type RFMRecord struct {
	CustomerUniqueID string
	Recency          int
	Frequency        int
	Monetary         float64
	CustomerCity     string
	CustomerState    string
	RScore           *int
	FScore           *int
	MScore           *int
	RFMScore         string
	Segment          string
	FirstPurchase    time.Time
	LastPurchase     time.Time
	TenureDays       int
	AvgOrderValue    *float64
}

func (s *SegmentationService) Build(ctx context.Context) ([]RFMRecord, error) {
	orders, err := s.orderRepo.ListWithCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	payments, err := s.paymentRepo.AggregateByOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate payments: %w", err)
	}
	paymentByOrder := indexBy(payments, func(p repository.PaymentAggregate) string { return p.OrderID })

	var input []CustomerOrder
	for _, o := range orders {
		if !o.Delivered() || o.CustomerUniqueID == nil || o.OrderPurchaseTimestamp == nil {
			continue
		}
		co := CustomerOrder{
			CustomerUniqueID: *o.CustomerUniqueID,
			OrderID:          o.OrderID,
			Purchase:         *o.OrderPurchaseTimestamp,
		}
		if o.CustomerCity != nil {
			co.CustomerCity = *o.CustomerCity
		}
		if o.CustomerState != nil {
			co.CustomerState = *o.CustomerState
		}
		if p, ok := paymentByOrder[o.OrderID]; ok {
			co.PaymentValue = p.TotalPaymentValue
		}
		input = append(input, co)
	}

	return s.Compute(input), nil
}

// Compute runs the segmentation algorithm over the delivered-order
// population. Customers come out sorted by customer_unique_id so repeated
// runs over an unchanged source produce identical extracts.
func (s *SegmentationService) Compute(orders []CustomerOrder) []RFMRecord {
	type accumulator struct {
		first, last time.Time
		firstCity   string
		firstState  string
		frequency   int
		monetary    float64
	}

	byCustomer := make(map[string]*accumulator)
	var maxPurchase time.Time
	for _, o := range orders {
		acc, ok := byCustomer[o.CustomerUniqueID]
		if !ok {
			acc = &accumulator{first: o.Purchase, last: o.Purchase, firstCity: o.CustomerCity, firstState: o.CustomerState}
			byCustomer[o.CustomerUniqueID] = acc
		} else {
			if o.Purchase.Before(acc.first) {
				acc.first = o.Purchase
				acc.firstCity = o.CustomerCity
				acc.firstState = o.CustomerState
			}
			if o.Purchase.After(acc.last) {
				acc.last = o.Purchase
			}
		}
		acc.frequency++
		acc.monetary += o.PaymentValue
		if o.Purchase.After(maxPurchase) {
			maxPurchase = o.Purchase
		}
	}
	if len(byCustomer) == 0 {
		return nil
	}

	// Anchor recency to the dataset's own horizon, not wall-clock time.
	analysisDate := maxPurchase.Add(24 * time.Hour)
	if s != nil && s.analysisDate != nil {
		analysisDate = *s.analysisDate
	}

	ids := make([]string, 0, len(byCustomer))
	for id := range byCustomer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]RFMRecord, len(ids))
	recencies := make([]float64, len(ids))
	frequencies := make([]float64, len(ids))
	monetaries := make([]float64, len(ids))
	for i, id := range ids {
		acc := byCustomer[id]
		rec := RFMRecord{
			CustomerUniqueID: id,
			Recency:          temporal.DaysBetween(acc.last, analysisDate),
			Frequency:        acc.frequency,
			Monetary:         acc.monetary,
			CustomerCity:     acc.firstCity,
			CustomerState:    acc.firstState,
			FirstPurchase:    acc.first,
			LastPurchase:     acc.last,
			TenureDays:       temporal.DaysBetween(acc.first, acc.last),
		}
		if rec.Frequency > 0 {
			avg := rec.Monetary / float64(rec.Frequency)
			rec.AvgOrderValue = &avg
		}
		records[i] = rec
		recencies[i] = float64(rec.Recency)
		frequencies[i] = float64(rec.Frequency)
		monetaries[i] = rec.Monetary
	}

	// The most recent quintile scores highest, so recency is inverted.
	rScores := stats.QuantileScores(recencies, rfmQuantiles)
	stats.InvertScores(rScores, rfmQuantiles)
	// Frequency distributions are tie-heavy; rank with first-method tie
	// breaking before quantiling so ties don't collapse into one bucket.
	fScores := stats.QuantileScores(stats.RankFirst(frequencies), rfmQuantiles)
	mScores := stats.QuantileScores(monetaries, rfmQuantiles)

	for i := range records {
		r := &records[i]
		r.RScore = rScores[i]
		r.FScore = fScores[i]
		r.MScore = mScores[i]
		r.Segment = SegmentFor(r.RScore, r.FScore)
		if r.RScore != nil && r.FScore != nil && r.MScore != nil {
			r.RFMScore = fmt.Sprintf("%d%d%d", *r.RScore, *r.FScore, *r.MScore)
		} else {
			// No placeholder digits: a single undefined dimension makes
			// the whole code unknown.
			r.RFMScore = SegmentUnknown
			r.Segment = SegmentUnknown
		}
	}
	return records
}

// CustomerSegmentsTable renders the records as the customer_segments
// extract.
func CustomerSegmentsTable(records []RFMRecord) *export.Table {
	t := export.NewTable(
		"customer_unique_id", "recency", "frequency", "monetary",
		"customer_city", "customer_state",
		"r_score", "f_score", "m_score", "rfm_score", "segment",
		"first_purchase_date", "last_purchase_date", "customer_tenure_days", "avg_order_value",
	)
	for _, r := range records {
		first := r.FirstPurchase
		last := r.LastPurchase
		t.Append(
			r.CustomerUniqueID,
			fmt.Sprintf("%d", r.Recency),
			fmt.Sprintf("%d", r.Frequency),
			export.FloatVal(r.Monetary),
			r.CustomerCity, r.CustomerState,
			export.Int(r.RScore), export.Int(r.FScore), export.Int(r.MScore),
			r.RFMScore, r.Segment,
			export.Timestamp(&first), export.Timestamp(&last),
			fmt.Sprintf("%d", r.TenureDays),
			export.Float(r.AvgOrderValue),
		)
	}
	return t
}
