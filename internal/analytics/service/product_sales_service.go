package service

import (
	"context"
	"fmt"

	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/repository"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/analytics/temporal"
	"github.com/PhunsokNorboo/End-to-End-E-Commerce-Business-Intelligence-Analysis/internal/export"
)

// UnknownCategory substitutes a product category with no English
// translation.
const UnknownCategory = "Unknown"

// ProductSalesService builds the order-item-grain extract: one row per
// item with product, category translation, seller, and order context.
type ProductSalesService struct {
	itemRepo *repository.ItemRepository
}

func NewProductSalesService(itemRepo *repository.ItemRepository) *ProductSalesService {
	return &ProductSalesService{itemRepo: itemRepo}
}

// ProductSaleRow is one output row of the product_sales extract.
type ProductSaleRow struct {
	repository.ItemDetail

	CategoryEnglish string
	OrderMonth      *string
	OrderYear       *int
	TotalItemValue  float64
}

func (s *ProductSalesService) Build(ctx context.Context) ([]ProductSaleRow, error) {
	items, err := s.itemRepo.ListDetailed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	rows := make([]ProductSaleRow, 0, len(items))
	for _, it := range items {
		row := ProductSaleRow{
			ItemDetail:      it,
			CategoryEnglish: UnknownCategory,
			TotalItemValue:  it.Price + it.FreightValue,
		}
		if it.ProductCategoryNameEnglish != nil {
			row.CategoryEnglish = *it.ProductCategoryNameEnglish
		}
		if ts := it.OrderPurchaseTimestamp; ts != nil {
			month := temporal.YearMonth(*ts)
			year := temporal.Year(*ts)
			row.OrderMonth = &month
			row.OrderYear = &year
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ProductSalesTable renders the rows as the product_sales extract.
func ProductSalesTable(rows []ProductSaleRow) *export.Table {
	t := export.NewTable(
		"order_id", "order_item_id", "product_id", "seller_id",
		"shipping_limit_date", "price", "freight_value",
		"product_category_name", "product_category_name_english",
		"product_weight_g", "product_length_cm", "product_height_cm", "product_width_cm",
		"product_photos_qty",
		"seller_city", "seller_state", "seller_zip_code_prefix",
		"order_purchase_timestamp", "order_status",
		"order_month", "order_year", "total_item_value",
	)
	for _, r := range rows {
		t.Append(
			r.OrderID, fmt.Sprintf("%d", r.OrderItemID), r.ProductID, r.SellerID,
			export.Timestamp(r.ShippingLimitDate), export.FloatVal(r.Price), export.FloatVal(r.FreightValue),
			export.String(r.ProductCategoryName), r.CategoryEnglish,
			export.Float(r.ProductWeightG), export.Float(r.ProductLengthCm),
			export.Float(r.ProductHeightCm), export.Float(r.ProductWidthCm),
			export.Int(r.ProductPhotosQty),
			export.String(r.SellerCity), export.String(r.SellerState), export.String(r.SellerZipCodePrefix),
			export.Timestamp(r.OrderPurchaseTimestamp), export.String(r.OrderStatus),
			export.String(r.OrderMonth), export.Int(r.OrderYear), export.FloatVal(r.TotalItemValue),
		)
	}
	return t
}
