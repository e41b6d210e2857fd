package model

import "github.com/shopspring/decimal"

// 注文明細
// Priceは購入時点の単価。商品の現在価格とは連動しない。
// ProductIDは弱参照（商品が消えても残る）
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
