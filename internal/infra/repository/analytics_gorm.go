package repository

import (
	"context"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

func (r *AnalyticsGormRepository) SumOrderTotals(ctx context.Context, excluded model.OrderStatus) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status <> ?", excluded).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *AnalyticsGormRepository) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnalyticsGormRepository) CountOrdersByStatus(ctx context.Context) ([]repo.StatusCount, error) {
	var rows []repo.StatusCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *AnalyticsGormRepository) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 売上0の商品も残すためLEFT JOIN + COALESCE
func (r *AnalyticsGormRepository) TopProducts(ctx context.Context, limit int) ([]repo.TopProductRow, error) {
	var rows []repo.TopProductRow
	err := r.db.WithContext(ctx).Table("products").
		Select("products.id, products.name, products.price, products.image_url, COALESCE(SUM(order_items.quantity), 0) AS units_sold").
		Joins("LEFT JOIN order_items ON order_items.product_id = products.id").
		Group("products.id, products.name, products.price, products.image_url").
		Order("units_sold DESC").
		Order("products.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
