package repository

import (
	"context"

	"shopadmin/internal/domain/model"
)

// 一覧検索
type ProductListQuery struct {
	Skip       int
	Limit      int
	CategoryID *int64
	IsActive   *bool
	IsFeatured *bool
	// name / description / カテゴリ名の部分一致（大文字小文字無視）
	Search string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	CountByCategoryID(ctx context.Context, categoryID int64) (int64, error)

	Create(ctx context.Context, p *model.Product) error
	// columnsに挙げた列だけ更新
	Update(ctx context.Context, p *model.Product, columns []string) error
	Delete(ctx context.Context, id int64) error
}
