package repository

import (
	"context"

	"shopadmin/internal/domain/model"
)

type CustomerListQuery struct {
	Skip   int
	Limit  int
	Search string
}

type CustomerRepository interface {
	List(ctx context.Context, q CustomerListQuery) ([]model.Customer, error)
	Count(ctx context.Context) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer, columns []string) error
	Delete(ctx context.Context, id int64) error
}
