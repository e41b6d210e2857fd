package usecase

import (
	"context"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultTopProductsLimit = 5
	maxTopProductsLimit     = 50
)

type AnalyticsUsecase struct {
	tx repo.TransactionManager
}

func NewAnalyticsUsecase(tx repo.TransactionManager) *AnalyticsUsecase {
	return &AnalyticsUsecase{tx: tx}
}

// ダッシュボードの集計（金額は小数2桁に丸めて返す）
type DashboardStats struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TotalCustomers    int64           `json:"total_customers"`
	TotalProducts     int64           `json:"total_products"`
	PendingOrders     int64           `json:"pending_orders"`
	DeliveredOrders   int64           `json:"delivered_orders"`
}

type TopProduct struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	UnitsSold int64           `json:"units_sold"`
	ImageURL  string          `json:"image_url"`
}

// DashboardStats はキャンセル以外の売上と件数をまとめる。
// キャンセル注文は売上に含めないが注文数には数える。
func (u *AnalyticsUsecase) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		a := r.Analytics()

		revenue, err := a.SumOrderTotals(ctx, model.OrderStatusCancelled)
		if err != nil {
			return newInternalError()
		}
		totalOrders, err := a.CountOrders(ctx)
		if err != nil {
			return newInternalError()
		}
		byStatus, err := a.CountOrdersByStatus(ctx)
		if err != nil {
			return newInternalError()
		}
		customers, err := a.CountCustomers(ctx)
		if err != nil {
			return newInternalError()
		}
		products, err := a.CountProducts(ctx)
		if err != nil {
			return newInternalError()
		}

		counts := statusCounts(byStatus)
		out = DashboardStats{
			TotalRevenue:      revenue.Round(2),
			TotalOrders:       totalOrders,
			AverageOrderValue: averageOrderValue(revenue, totalOrders).Round(2),
			TotalCustomers:    customers,
			TotalProducts:     products,
			PendingOrders:     counts[model.OrderStatusPending],
			DeliveredOrders:   counts[model.OrderStatusDelivered],
		}
		return nil
	})
	if err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

// 注文0件なら0
func averageOrderValue(revenue decimal.Decimal, orders int64) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(orders))
}

// TopProducts は販売数順。売上のない商品も最後に並ぶ。
// limit=0は既定値(5)。
func (u *AnalyticsUsecase) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit == 0 {
		limit = defaultTopProductsLimit
	}
	if limit < 1 || limit > maxTopProductsLimit {
		return nil, NewValidationError("limit must be between 1 and 50")
	}

	var out []TopProduct
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, err := r.Analytics().TopProducts(ctx, limit)
		if err != nil {
			return newInternalError()
		}
		out = make([]TopProduct, 0, len(rows))
		for _, row := range rows {
			out = append(out, TopProduct{
				ID:        row.ID,
				Name:      row.Name,
				Price:     row.Price,
				UnitsSold: row.UnitsSold,
				ImageURL:  row.ImageURL,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// OrderStats は total と5つのステータス全部の件数を返す（0件のステータスも0で入る）。
func (u *AnalyticsUsecase) OrderStats(ctx context.Context) (map[string]int64, error) {
	var out map[string]int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		total, err := r.Analytics().CountOrders(ctx)
		if err != nil {
			return newInternalError()
		}
		byStatus, err := r.Analytics().CountOrdersByStatus(ctx)
		if err != nil {
			return newInternalError()
		}

		counts := statusCounts(byStatus)
		out = make(map[string]int64, len(model.OrderStatuses)+1)
		out["total"] = total
		for _, s := range model.OrderStatuses {
			out[string(s)] = counts[s]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 既知のステータスをすべて0で初期化してから数える
func statusCounts(rows []repo.StatusCount) map[model.OrderStatus]int64 {
	counts := make(map[model.OrderStatus]int64, len(model.OrderStatuses))
	for _, s := range model.OrderStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		if _, ok := counts[row.Status]; ok {
			counts[row.Status] = row.Count
		}
	}
	return counts
}
