package handler

import (
	"net/http"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// POST /api/orders のリクエストボディ
type OrderCreateRequest struct {
	CustomerID      *int64             `json:"customer_id" validate:"omitempty,gt=0"`
	Status          string             `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Tax             decimal.Decimal    `json:"tax"`
	ShippingCost    decimal.Decimal    `json:"shipping_cost"`
	Total           decimal.Decimal    `json:"total"`
	ShippingAddress string             `json:"shipping_address"`
	BillingAddress  string             `json:"billing_address"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderHandler struct {
	uc        *usecase.OrderUsecase
	analytics *usecase.AnalyticsUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase, analytics *usecase.AnalyticsUsecase) *OrderHandler {
	return &OrderHandler{uc: uc, analytics: analytics}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/orders", h.list, guards.Authenticated...)
	g.GET("/orders/count", h.count)
	g.GET("/orders/stats", h.stats, guards.Authenticated...)
	g.GET("/orders/:id", h.get, guards.Authenticated...)
	g.POST("/orders", h.create, guards.Authenticated...)
	g.PATCH("/orders/:id", h.update, guards.Authenticated...)
}

func (h *OrderHandler) list(c echo.Context) error {
	skip, limit, err := parseSkipLimit(c)
	if err != nil {
		return writeError(c, err)
	}
	customerID, err := queryInt64Ptr(c, "customer_id")
	if err != nil {
		return writeError(c, err)
	}
	orders, err := h.uc.List(c.Request().Context(), usecase.ListOrdersInput{
		Skip:       skip,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: customerID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *OrderHandler) stats(c echo.Context) error {
	stats, err := h.analytics.OrderStats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *OrderHandler) get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	o, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	items := make([]usecase.CreateOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CreateOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	o, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		CustomerID:      req.CustomerID,
		Status:          req.Status,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCost:    req.ShippingCost,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Notes:           req.Notes,
		Items:           items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	var patch model.OrderPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid body")
	}

	o, err := h.uc.Update(c.Request().Context(), actorID, id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
