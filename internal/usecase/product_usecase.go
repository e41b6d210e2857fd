package usecase

import (
	"context"
	"errors"
	"strings"

	"shopadmin/internal/domain/identifier"
	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"
	repo "shopadmin/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// 保存時のslug重複でやり直す最大回数
const maxSlugRetries = 3

// slugにできない名前のときの既定値
const defaultProductSlug = "product"

type ProductUsecase struct {
	tx         repo.TransactionManager
	products   repo.ProductRepository
	categories repo.CategoryRepository
	clock      Clock
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	clock Clock,
) *ProductUsecase {
	return &ProductUsecase{
		tx:         tx,
		products:   products,
		categories: categories,
		clock:      clock,
	}
}

// GET /productsの入力
type ListProductsInput struct {
	Skip       int
	Limit      int
	CategoryID *int64
	IsActive   *bool
	IsFeatured *bool
	Search     string
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	skip, limit, err := normalizePage(in.Skip, in.Limit)
	if err != nil {
		return nil, err
	}
	if len(in.Search) > 100 {
		return nil, NewValidationError("search too long")
	}

	items, err := u.products.List(ctx, repo.ProductListQuery{
		Skip:       skip,
		Limit:      limit,
		CategoryID: in.CategoryID,
		IsActive:   in.IsActive,
		IsFeatured: in.IsFeatured,
		Search:     strings.TrimSpace(in.Search),
	})
	if err != nil {
		return nil, newInternalError()
	}
	return items, nil
}

func (u *ProductUsecase) Count(ctx context.Context) (int64, error) {
	n, err := u.products.Count(ctx)
	if err != nil {
		return 0, newInternalError()
	}
	return n, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, newInternalError()
	}
	return p, nil
}

func (u *ProductUsecase) GetBySlug(ctx context.Context, slug string) (model.Product, error) {
	p, err := u.products.FindBySlug(ctx, strings.TrimSpace(slug))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return model.Product{}, newInternalError()
	}
	return p, nil
}

type CreateProductInput struct {
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Cost           decimal.Decimal
	SKU            *string
	Stock          int64
	ImageURL       string
	Images         []string
	CategoryID     *int64
	IsActive       *bool // nilならtrue
	IsFeatured     bool
}

// Create はslugを決めて商品を保存する。
// 保存時にslugが競合したら次の候補で最大maxSlugRetries回やり直す。
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	p, err := u.buildProduct(ctx, in)
	if err != nil {
		return model.Product{}, err
	}

	base := strings.TrimSpace(in.Slug)
	if base == "" {
		base = slugOrDefault(in.Name, defaultProductSlug)
	} else if identifier.Slugify(base) != base {
		return model.Product{}, NewValidationError("slug must contain only lowercase letters, digits and hyphens")
	}

	log := logger.FromContext(ctx)
	for attempt := 0; attempt <= maxSlugRetries; attempt++ {
		slug, err := identifier.ResolveSlug(ctx, base, u.products.ExistsBySlug)
		if err != nil {
			return model.Product{}, newInternalError()
		}
		if slug != base {
			log.Info("slug collision probed", zap.String("base", base), zap.String("chosen", slug))
		}

		candidate := p
		candidate.Slug = slug
		err = u.products.Create(ctx, &candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return model.Product{}, newInternalError()
		}

		// slugとskuのどちらの制約か確かめる
		taken, exErr := u.products.ExistsBySlug(ctx, slug)
		if exErr != nil {
			return model.Product{}, newInternalError()
		}
		if !taken {
			return model.Product{}, NewConflictError("sku already exists")
		}
		log.Warn("slug taken on insert, retrying", zap.String("slug", slug), zap.Int("attempt", attempt+1))
	}
	return model.Product{}, NewConflictError("slug already exists")
}

func (u *ProductUsecase) buildProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewValidationError("name required")
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	now := u.clock.Now()
	p := model.Product{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		SKU:         normalizeSKU(in.SKU),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Images:      datatypes.JSONSlice[string](images),
		CategoryID:  in.CategoryID,
		IsActive:    isActive,
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CompareAtPrice != nil {
		p.CompareAtPrice = decimal.NewNullDecimal(*in.CompareAtPrice)
	}

	if err := validateProduct(p); err != nil {
		return model.Product{}, err
	}
	if err := u.ensureCategory(ctx, u.categories, p.CategoryID); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Update はPATCHで来た項目だけ更新する。
func (u *ProductUsecase) Update(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product not found")
		}
		if err != nil {
			return newInternalError()
		}

		oldSlug := p.Slug
		cols, err := patch.Apply(&p, u.clock.Now())
		if err != nil {
			return NewValidationError(err.Error())
		}
		if len(cols) == 0 {
			out = p
			return nil
		}

		p.Name = strings.TrimSpace(p.Name)
		p.SKU = normalizeSKU(p.SKU)
		if p.Name == "" {
			return NewValidationError("name required")
		}
		if err := validateProduct(p); err != nil {
			return err
		}
		if patch.Slug.Set && p.Slug != oldSlug {
			if identifier.Slugify(p.Slug) != p.Slug || p.Slug == "" {
				return NewValidationError("slug must contain only lowercase letters, digits and hyphens")
			}
			// 明示指定のslugは採番せず競合で返す
			taken, err := r.Products().ExistsBySlug(ctx, p.Slug)
			if err != nil {
				return newInternalError()
			}
			if taken {
				return NewConflictError("slug already exists")
			}
		}
		if patch.CategoryID.Set {
			if err := u.ensureCategory(ctx, r.Categories(), p.CategoryID); err != nil {
				return err
			}
		}

		if err := r.Products().Update(ctx, &p, cols); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			if errors.Is(err, repo.ErrDuplicate) {
				return NewConflictError("slug or sku already exists")
			}
			return newInternalError()
		}
		out = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// Delete は物理削除。注文明細の参照はそのまま残る。
func (u *ProductUsecase) Delete(ctx context.Context, actorUserID int64, id int64) error {
	if actorUserID <= 0 {
		return NewAuthError("unauthorized")
	}
	if id <= 0 {
		return NewValidationError("invalid product id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product not found")
		}
		if err != nil {
			return newInternalError()
		}
		if err := r.Products().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			return newInternalError()
		}
		if err := writeAudit(ctx, r.AuditLogs(), actorUserID, model.AuditActionDeleteProduct,
			model.AuditResourceProduct, id, p, nil, u.clock.Now()); err != nil {
			return newInternalError()
		}
		return nil
	})
}

func (u *ProductUsecase) ensureCategory(ctx context.Context, categories repo.CategoryRepository, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := categories.FindByID(ctx, *id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("category not found")
		}
		return newInternalError()
	}
	return nil
}

func validateProduct(p model.Product) error {
	if !p.Price.IsPositive() {
		return NewValidationError("price must be > 0")
	}
	if p.CompareAtPrice.Valid && p.CompareAtPrice.Decimal.LessThan(p.Price) {
		return NewValidationError("compare_at_price must be >= price")
	}
	if p.Cost.IsNegative() {
		return NewValidationError("cost must be >= 0")
	}
	if p.Stock < 0 {
		return NewValidationError("stock must be >= 0")
	}
	return nil
}

// 空のSKUは未設定(NULL)として扱う
func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return &s
}

// 記号だけの名前などslugが空になるときはfallback
func slugOrDefault(name, fallback string) string {
	if s := identifier.Slugify(name); s != "" {
		return s
	}
	return fallback
}
