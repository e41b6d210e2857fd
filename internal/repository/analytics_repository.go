package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"shopadmin/internal/domain/model"
)

// 売れ筋集計の1行
type TopProductRow struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	UnitsSold int64
}

type StatusCount struct {
	Status model.OrderStatus
	Count  int64
}

// ダッシュボード用の集計クエリ
type AnalyticsRepository interface {
	// excluded以外の注文のtotal合計（0件なら0）
	SumOrderTotals(ctx context.Context, excluded model.OrderStatus) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
	// 注文が1件もないステータスは返らない
	CountOrdersByStatus(ctx context.Context) ([]StatusCount, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	// 販売数の多い順。売上のない商品も0として含む。
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
}
