package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	//割引前の価格（あればprice以上）
	CompareAtPrice decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"compare_at_price"`

	//原価
	Cost decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`

	//SKUは未設定(NULL)を許す
	SKU *string `gorm:"type:varchar(100);uniqueIndex" json:"sku"`

	//在庫は表示用のカウンタ（注文では減らさない）
	Stock int64 `gorm:"not null" json:"stock"`

	ImageURL string                      `gorm:"type:varchar(500)" json:"image_url"`
	Images   datatypes.JSONSlice[string] `json:"images"`

	//カテゴリは弱参照（NULL可）
	CategoryID *int64 `gorm:"index" json:"category_id"`

	IsActive   bool      `gorm:"not null" json:"is_active"`
	IsFeatured bool      `gorm:"not null" json:"is_featured"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
