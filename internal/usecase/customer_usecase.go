package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"shopadmin/internal/domain/model"
	repo "shopadmin/internal/repository"
)

type CustomerUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	clock     Clock
}

func NewCustomerUsecase(tx repo.TransactionManager, customers repo.CustomerRepository, clock Clock) *CustomerUsecase {
	return &CustomerUsecase{tx: tx, customers: customers, clock: clock}
}

type ListCustomersInput struct {
	Skip   int
	Limit  int
	Search string
}

func (u *CustomerUsecase) List(ctx context.Context, in ListCustomersInput) ([]model.Customer, error) {
	skip, limit, err := normalizePage(in.Skip, in.Limit)
	if err != nil {
		return nil, err
	}
	cs, err := u.customers.List(ctx, repo.CustomerListQuery{
		Skip:   skip,
		Limit:  limit,
		Search: strings.TrimSpace(in.Search),
	})
	if err != nil {
		return nil, newInternalError()
	}
	return cs, nil
}

func (u *CustomerUsecase) Count(ctx context.Context) (int64, error) {
	n, err := u.customers.Count(ctx)
	if err != nil {
		return 0, newInternalError()
	}
	return n, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, id int64) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, NewValidationError("invalid customer id")
	}
	c, err := u.customers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, NewNotFoundError("customer not found")
	}
	if err != nil {
		return model.Customer{}, newInternalError()
	}
	return c, nil
}

type CreateCustomerInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	Country   string
}

// Create はemailが既にあればその顧客を返す（チェックアウトから何度呼ばれてもよい）。
// 戻り値のboolは新規作成したかどうか。
func (u *CustomerUsecase) Create(ctx context.Context, in CreateCustomerInput) (model.Customer, bool, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return model.Customer{}, false, err
	}

	existing, err := u.customers.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, false, newInternalError()
	}

	c := model.Customer{
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		Country:   in.Country,
		CreatedAt: u.clock.Now(),
	}
	if err := u.customers.Create(ctx, &c); err != nil {
		if !errors.Is(err, repo.ErrDuplicate) {
			return model.Customer{}, false, newInternalError()
		}
		// 同時に同じemailで作られた。勝った方を返す。
		winner, err := u.customers.FindByEmail(ctx, email)
		if err != nil {
			return model.Customer{}, false, newInternalError()
		}
		return winner, false, nil
	}
	return c, true, nil
}

func (u *CustomerUsecase) Update(ctx context.Context, id int64, patch model.CustomerPatch) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, NewValidationError("invalid customer id")
	}

	var out model.Customer
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("customer not found")
		}
		if err != nil {
			return newInternalError()
		}

		cols, err := patch.Apply(&c)
		if err != nil {
			return NewValidationError(err.Error())
		}
		if patch.Email.Set {
			email, err := normalizeEmail(c.Email)
			if err != nil {
				return err
			}
			c.Email = email
		}
		if len(cols) > 0 {
			if err := r.Customers().Update(ctx, &c, cols); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return NewNotFoundError("customer not found")
				}
				if errors.Is(err, repo.ErrDuplicate) {
					return NewConflictError("email already exists")
				}
				return newInternalError()
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

// 顧客の注文は残る（customer_idは弱参照）
func (u *CustomerUsecase) Delete(ctx context.Context, actorUserID int64, id int64) error {
	if actorUserID <= 0 {
		return NewAuthError("unauthorized")
	}
	if id <= 0 {
		return NewValidationError("invalid customer id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Customers().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("customer not found")
		}
		if err != nil {
			return newInternalError()
		}
		if err := r.Customers().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("customer not found")
			}
			return newInternalError()
		}
		if err := writeAudit(ctx, r.AuditLogs(), actorUserID, model.AuditActionDeleteCustomer,
			model.AuditResourceCustomer, id, c, nil, u.clock.Now()); err != nil {
			return newInternalError()
		}
		return nil
	})
}

// メールチェック（小文字にそろえる）
func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", NewValidationError("email required")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", NewValidationError("invalid email format")
	}
	return trimmed, nil
}
