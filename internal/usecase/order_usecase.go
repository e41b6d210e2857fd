package usecase

import (
	"context"
	"errors"

	"shopadmin/internal/domain/identifier"
	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"
	repo "shopadmin/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	orders  repo.OrderRepository
	numbers identifier.OrderNumberGenerator
	clock   Clock
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	numbers identifier.OrderNumberGenerator,
	clock Clock,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, numbers: numbers, clock: clock}
}

type ListOrdersInput struct {
	Skip       int
	Limit      int
	Status     string
	CustomerID *int64
}

// 新しい順、明細付き
func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) ([]model.Order, error) {
	skip, limit, err := normalizePage(in.Skip, in.Limit)
	if err != nil {
		return nil, err
	}
	if in.Status != "" && !model.OrderStatus(in.Status).Valid() {
		return nil, NewValidationError("invalid status")
	}

	orders, err := u.orders.List(ctx, repo.OrderListFilter{
		Skip:       skip,
		Limit:      limit,
		Status:     in.Status,
		CustomerID: in.CustomerID,
	})
	if err != nil {
		return nil, newInternalError()
	}
	return orders, nil
}

// statusが空なら全件
func (u *OrderUsecase) Count(ctx context.Context, status string) (int64, error) {
	var filter *model.OrderStatus
	if status != "" {
		s := model.OrderStatus(status)
		if !s.Valid() {
			return 0, NewValidationError("invalid status")
		}
		filter = &s
	}
	n, err := u.orders.Count(ctx, filter)
	if err != nil {
		return 0, newInternalError()
	}
	return n, nil
}

func (u *OrderUsecase) Get(ctx context.Context, id int64) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, NewValidationError("invalid order id")
	}
	o, err := u.orders.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewNotFoundError("order not found")
	}
	if err != nil {
		return model.Order{}, newInternalError()
	}
	return o, nil
}

type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int64
	// 購入時の単価。商品の現在価格は見ない。
	Price decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID      *int64
	Status          string // 空ならpending
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress string
	BillingAddress  string
	Notes           string
	Items           []CreateOrderItemInput
}

// Create は注文ヘッダと明細を1トランザクションで保存する。
// 途中で失敗したらヘッダも含めて何も残らない。
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (model.Order, error) {
	status, err := validateCreateOrder(in)
	if err != nil {
		return model.Order{}, err
	}

	var out model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.CustomerID != nil {
			if _, err := r.Customers().FindByID(ctx, *in.CustomerID); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewNotFoundError("customer not found")
				}
				return newInternalError()
			}
		}

		now := u.clock.Now()
		header := model.Order{
			OrderNumber:     u.numbers.NewOrderNumber(),
			CustomerID:      in.CustomerID,
			Status:          status,
			Subtotal:        in.Subtotal,
			Tax:             in.Tax,
			ShippingCost:    in.ShippingCost,
			Total:           in.Total,
			ShippingAddress: in.ShippingAddress,
			BillingAddress:  in.BillingAddress,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		// ヘッダを先に保存してIDを得る
		if err := r.Orders().Create(ctx, &header); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return NewConflictError("order number already exists")
			}
			return newInternalError()
		}

		// 明細は入力順に保存（IDの順序が表示順になる）
		for _, it := range in.Items {
			item := model.OrderItem{
				OrderID:   header.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := r.OrderItems().Create(ctx, &item); err != nil {
				return newInternalError()
			}
		}

		created, err := r.Orders().FindByID(ctx, header.ID)
		if err != nil {
			return newInternalError()
		}
		out = created
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	logger.FromContext(ctx).Info("order created",
		zap.String("order_number", out.OrderNumber),
		zap.Int("items", len(out.Items)),
	)
	return out, nil
}

func validateCreateOrder(in CreateOrderInput) (model.OrderStatus, error) {
	status := model.OrderStatusPending
	if in.Status != "" {
		status = model.OrderStatus(in.Status)
		if !status.Valid() {
			return "", NewValidationError("invalid status")
		}
	}
	if len(in.Items) == 0 {
		return "", NewValidationError("items required")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return "", NewValidationError("invalid product_id")
		}
		if it.Quantity <= 0 {
			return "", NewValidationError("quantity must be > 0")
		}
		if it.Price.IsNegative() {
			return "", NewValidationError("price must be >= 0")
		}
	}
	money := []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", in.Subtotal},
		{"tax", in.Tax},
		{"shipping_cost", in.ShippingCost},
		{"total", in.Total},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			return "", NewValidationError(m.name + " must be >= 0")
		}
	}
	return status, nil
}

// Update はstatus/notes/住所だけ変更できる。ステータス遷移の制限はない。
func (u *OrderUsecase) Update(ctx context.Context, actorUserID int64, id int64, patch model.OrderPatch) (model.Order, error) {
	if actorUserID <= 0 {
		return model.Order{}, NewAuthError("unauthorized")
	}
	if id <= 0 {
		return model.Order{}, NewValidationError("invalid order id")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("order not found")
		}
		if err != nil {
			return newInternalError()
		}

		before := orderAuditView(o)
		cols, err := patch.Apply(&o, u.clock.Now())
		if err != nil {
			return NewValidationError(err.Error())
		}
		if len(cols) == 0 {
			out = o
			return nil
		}

		if err := r.Orders().Update(ctx, &o, cols); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("order not found")
			}
			return newInternalError()
		}

		//監査ログ（UPDATE_ORDER）
		if err := writeAudit(ctx, r.AuditLogs(), actorUserID, model.AuditActionUpdateOrder,
			model.AuditResourceOrder, id, before, orderAuditView(o), u.clock.Now()); err != nil {
			return newInternalError()
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 監査ログに残す変更可能な項目だけ
type orderAudit struct {
	Status          model.OrderStatus `json:"status"`
	Notes           string            `json:"notes"`
	ShippingAddress string            `json:"shipping_address"`
	BillingAddress  string            `json:"billing_address"`
}

func orderAuditView(o model.Order) orderAudit {
	return orderAudit{
		Status:          o.Status,
		Notes:           o.Notes,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
	}
}
