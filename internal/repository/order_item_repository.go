package repository

import (
	"context"

	"shopadmin/internal/domain/model"
)

// 明細は注文作成のトランザクション内でだけ作る
type OrderItemRepository interface {
	Create(ctx context.Context, item *model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
