package repository

import (
	"context"

	"shopadmin/internal/domain/model"
)

type OrderListFilter struct {
	Skip       int
	Limit      int
	Status     string
	CustomerID *int64
}

type OrderRepository interface {
	// ヘッダだけ保存（明細は保存しない）。IDが埋まる。
	Create(ctx context.Context, order *model.Order) error
	// 明細付きで取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 新しい順、明細付き
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	// statusがnilなら全件
	Count(ctx context.Context, status *model.OrderStatus) (int64, error)
	Update(ctx context.Context, order *model.Order, columns []string) error
}
