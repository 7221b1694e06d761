package service

import (
	"context"
	"fmt"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Extract names, also the sink target identifiers.
const (
	ExtractOrdersFact        = "orders_fact"
	ExtractProductSales      = "product_sales"
	ExtractCustomerSegments  = "customer_segments"
	ExtractMonthlyMetrics    = "monthly_metrics"
	ExtractSellerPerformance = "seller_performance"
)

// Pipeline runs the five extract builders against the source and writes
// each finished table to the sink. The builders share no state; they run
// sequentially here, but nothing depends on the order.
type Pipeline struct {
	services *Services
	sink     export.Sink
	logger   *zap.Logger
	runID    string
}

// NewPipeline wires a run. An empty runID gets a fresh UUID; callers that
// also label sink artifacts pass the shared ID in.
func NewPipeline(services *Services, sink export.Sink, logger *zap.Logger, runID string) *Pipeline {
	if runID == "" {
		runID = uuid.New().String()
	}
	return &Pipeline{
		services: services,
		sink:     sink,
		logger:   logger,
		runID:    runID,
	}
}

// RunID identifies this pipeline run in logs and object names.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes every extract. Each extract either fully completes and is
// written, or fails the run; no partial table ever reaches the sink.
func (p *Pipeline) Run(ctx context.Context) error {
	steps := []struct {
		name  string
		build func(context.Context) (*export.Table, error)
	}{
		{ExtractOrdersFact, func(ctx context.Context) (*export.Table, error) {
			rows, err := p.services.OrdersFact.Build(ctx)
			if err != nil {
				return nil, err
			}
			return OrdersFactTable(rows), nil
		}},
		{ExtractProductSales, func(ctx context.Context) (*export.Table, error) {
			rows, err := p.services.ProductSales.Build(ctx)
			if err != nil {
				return nil, err
			}
			return ProductSalesTable(rows), nil
		}},
		{ExtractCustomerSegments, func(ctx context.Context) (*export.Table, error) {
			records, err := p.services.Segmentation.Build(ctx)
			if err != nil {
				return nil, err
			}
			return CustomerSegmentsTable(records), nil
		}},
		{ExtractMonthlyMetrics, func(ctx context.Context) (*export.Table, error) {
			rows, err := p.services.Monthly.Build(ctx)
			if err != nil {
				return nil, err
			}
			return MonthlyMetricsTable(rows), nil
		}},
		{ExtractSellerPerformance, func(ctx context.Context) (*export.Table, error) {
			rows, err := p.services.Seller.Build(ctx)
			if err != nil {
				return nil, err
			}
			return SellerPerformanceTable(rows), nil
		}},
	}

	p.logger.Info("Starting export run", zap.String("run_id", p.runID))

	for _, step := range steps {
		p.logger.Info("Building extract", zap.String("extract", step.name))

		table, err := step.build(ctx)
		if err != nil {
			p.logger.Error("Extract failed", zap.String("extract", step.name), zap.Error(err))
			return fmt.Errorf("build %s: %w", step.name, err)
		}

		path, err := p.sink.Write(ctx, step.name, table)
		if err != nil {
			p.logger.Error("Sink write failed", zap.String("extract", step.name), zap.Error(err))
			return fmt.Errorf("write %s: %w", step.name, err)
		}

		p.logger.Info("Extract written",
			zap.String("extract", step.name),
			zap.Int("rows", len(table.Rows)),
			zap.String("path", path),
		)
	}

	p.logger.Info("Export run complete", zap.String("run_id", p.runID))
	return nil
}
