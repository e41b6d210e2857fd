package usecase

import (
	"context"
	"errors"
	"strings"

	"shopadmin/internal/domain/identifier"
	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"
	repo "shopadmin/internal/repository"

	"go.uber.org/zap"
)

const defaultCategorySlug = "category"

type CategoryUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
	clock      Clock
}

func NewCategoryUsecase(tx repo.TransactionManager, categories repo.CategoryRepository, clock Clock) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categories: categories, clock: clock}
}

// 名前順
func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return nil, newInternalError()
	}
	return cs, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewValidationError("invalid category id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewNotFoundError("category not found")
	}
	if err != nil {
		return model.Category{}, newInternalError()
	}
	return c, nil
}

type CreateCategoryInput struct {
	Name        string
	Slug        string
	Description string
}

func (u *CategoryUsecase) Create(ctx context.Context, in CreateCategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Category{}, NewValidationError("name required")
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = slugOrDefault(name, defaultCategorySlug)
	} else if identifier.Slugify(slug) != slug {
		return model.Category{}, NewValidationError("slug must contain only lowercase letters, digits and hyphens")
	}

	// 同名カテゴリは作らない
	_, err := u.categories.FindByName(ctx, name)
	if err == nil {
		return model.Category{}, NewConflictError("category with this name already exists")
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, newInternalError()
	}

	taken, err := u.categories.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.Category{}, newInternalError()
	}
	if taken {
		return model.Category{}, NewConflictError("slug already exists")
	}

	c := model.Category{Name: name, Slug: slug, Description: in.Description}
	if err := u.categories.Create(ctx, &c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Category{}, NewConflictError("slug already exists")
		}
		return model.Category{}, newInternalError()
	}
	return c, nil
}

// Delete は参照している商品が1件でもあれば拒否する。
func (u *CategoryUsecase) Delete(ctx context.Context, actorUserID int64, id int64) error {
	if actorUserID <= 0 {
		return NewAuthError("unauthorized")
	}
	if id <= 0 {
		return NewValidationError("invalid category id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("category not found")
		}
		if err != nil {
			return newInternalError()
		}

		n, err := r.Products().CountByCategoryID(ctx, id)
		if err != nil {
			return newInternalError()
		}
		if n > 0 {
			logger.FromContext(ctx).Info("category delete refused",
				zap.Int64("category_id", id), zap.Int64("products", n))
			return NewConflictError("category has products")
		}

		if err := r.Categories().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("category not found")
			}
			return newInternalError()
		}
		if err := writeAudit(ctx, r.AuditLogs(), actorUserID, model.AuditActionDeleteCategory,
			model.AuditResourceCategory, id, c, nil, u.clock.Now()); err != nil {
			return newInternalError()
		}
		return nil
	})
}
