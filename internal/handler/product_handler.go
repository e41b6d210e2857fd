package handler

import (
	"net/http"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// POST /api/products のリクエストボディ
type ProductCreateRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Slug           string           `json:"slug" validate:"omitempty,max=255"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Cost           decimal.Decimal  `json:"cost"`
	SKU            *string          `json:"sku" validate:"omitempty,max=100"`
	Stock          int64            `json:"stock" validate:"gte=0"`
	ImageURL       string           `json:"image_url" validate:"omitempty,max=500"`
	Images         []string         `json:"images" validate:"omitempty,dive,max=500"`
	CategoryID     *int64           `json:"category_id" validate:"omitempty,gt=0"`
	IsActive       *bool            `json:"is_active"`
	IsFeatured     bool             `json:"is_featured"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// /api/products
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 参照は公開、変更はログイン必須、削除はadminのみ
func (h *ProductHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/products", h.list)
	g.GET("/products/count", h.count)
	g.GET("/products/slug/:slug", h.getBySlug)
	g.GET("/products/:id", h.get)
	g.POST("/products", h.create, guards.Authenticated...)
	g.PATCH("/products/:id", h.update, guards.Authenticated...)
	g.DELETE("/products/:id", h.delete, guards.Admin...)
}

func (h *ProductHandler) list(c echo.Context) error {
	skip, limit, err := parseSkipLimit(c)
	if err != nil {
		return writeError(c, err)
	}
	categoryID, err := queryInt64Ptr(c, "category_id")
	if err != nil {
		return writeError(c, err)
	}
	isActive, err := queryBoolPtr(c, "is_active")
	if err != nil {
		return writeError(c, err)
	}
	isFeatured, err := queryBoolPtr(c, "is_featured")
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Skip:       skip,
		Limit:      limit,
		CategoryID: categoryID,
		IsActive:   isActive,
		IsFeatured: isFeatured,
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *ProductHandler) get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) getBySlug(c echo.Context) error {
	p, err := h.uc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Cost:           req.Cost,
		SKU:            req.SKU,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
		Images:         req.Images,
		CategoryID:     req.CategoryID,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var patch model.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), actorID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
