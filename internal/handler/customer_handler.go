package handler

import (
	"net/http"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/usecase"

	"github.com/labstack/echo/v4"
)

// POST /api/customers（ストアフロントのチェックアウトから呼ばれる）
type CustomerCreateRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=50"`
	Address   string `json:"address"`
	City      string `json:"city" validate:"max=100"`
	Country   string `json:"country" validate:"max=100"`
}

type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/customers", h.list, guards.Authenticated...)
	g.GET("/customers/count", h.count)
	g.GET("/customers/:id", h.get, guards.Authenticated...)
	g.POST("/customers", h.create)
	g.PATCH("/customers/:id", h.update, guards.Authenticated...)
	g.DELETE("/customers/:id", h.delete, guards.Admin...)
}

func (h *CustomerHandler) list(c echo.Context) error {
	skip, limit, err := parseSkipLimit(c)
	if err != nil {
		return writeError(c, err)
	}
	cs, err := h.uc.List(c.Request().Context(), usecase.ListCustomersInput{
		Skip:   skip,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *CustomerHandler) count(c echo.Context) error {
	n, err := h.uc.Count(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *CustomerHandler) get(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	cust, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// 既存のemailなら200で既存の顧客を返す
func (h *CustomerHandler) create(c echo.Context) error {
	var req CustomerCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	cust, created, err := h.uc.Create(c.Request().Context(), usecase.CreateCustomerInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		Country:   req.Country,
	})
	if err != nil {
		return writeError(c, err)
	}
	if !created {
		return c.JSON(http.StatusOK, cust)
	}
	return c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var patch model.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid body")
	}
	cust, err := h.uc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) delete(c echo.Context) error {
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
