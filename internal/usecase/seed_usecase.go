package usecase

import (
	"context"
	"errors"
	"strings"

	"shopadmin/internal/domain/model"
	"shopadmin/internal/infra/logger"
	repo "shopadmin/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// 平文パスワードからハッシュへ（seed用）
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type SeedUsecase struct {
	tx     repo.TransactionManager
	users  repo.UserRepository
	hasher PasswordHasher
	clock  Clock
}

func NewSeedUsecase(tx repo.TransactionManager, users repo.UserRepository, hasher PasswordHasher, clock Clock) *SeedUsecase {
	return &SeedUsecase{tx: tx, users: users, hasher: hasher, clock: clock}
}

type SeedInput struct {
	AdminEmail    string
	AdminPassword string
}

type SeedResult struct {
	AdminCreated      bool
	CategoriesCreated int
	ProductsCreated   int
}

// Run は何度実行してもよい（名前・slugで既存を確認してから作る）。
func (u *SeedUsecase) Run(ctx context.Context, in SeedInput) (SeedResult, error) {
	var res SeedResult

	created, err := u.seedAdmin(ctx, in)
	if err != nil {
		return res, err
	}
	res.AdminCreated = created

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		categoryIDs := make(map[string]int64)
		for _, d := range demoProducts {
			if _, ok := categoryIDs[d.category]; ok {
				continue
			}
			c, err := r.Categories().FindByName(ctx, d.category)
			if errors.Is(err, repo.ErrNotFound) {
				c = model.Category{Name: d.category, Slug: slugOrDefault(d.category, defaultCategorySlug)}
				if err := r.Categories().Create(ctx, &c); err != nil {
					return err
				}
				res.CategoriesCreated++
			} else if err != nil {
				return err
			}
			categoryIDs[d.category] = c.ID
		}

		now := u.clock.Now()
		for _, d := range demoProducts {
			exists, err := r.Products().ExistsBySlug(ctx, d.slug)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			categoryID := categoryIDs[d.category]
			p := model.Product{
				Name:        d.name,
				Slug:        d.slug,
				Description: d.description,
				Price:       decimal.RequireFromString(d.price),
				Cost:        decimal.Zero,
				Stock:       d.stock,
				ImageURL:    d.imageURL,
				Images:      datatypes.JSONSlice[string]{},
				CategoryID:  &categoryID,
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Products().Create(ctx, &p); err != nil {
				return err
			}
			res.ProductsCreated++
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	logger.FromContext(ctx).Info("seed finished",
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("categories_created", res.CategoriesCreated),
		zap.Int("products_created", res.ProductsCreated),
	)
	return res, nil
}

func (u *SeedUsecase) seedAdmin(ctx context.Context, in SeedInput) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(in.AdminEmail))
	if email == "" || in.AdminPassword == "" {
		// 管理者の指定がなければ作らない
		return false, nil
	}

	_, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hashed, err := u.hasher.Hash(in.AdminPassword)
	if err != nil {
		return false, err
	}
	now := u.clock.Now()
	admin := model.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     "Admin User",
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, &admin); err != nil {
		return false, err
	}
	return true, nil
}

type demoProduct struct {
	name        string
	slug        string
	description string
	price       string
	imageURL    string
	category    string
	stock       int64
}

var demoProducts = []demoProduct{
	{"Minimalist Ceramic Vase", "minimalist-ceramic-vase", "A beautifully crafted ceramic vase with clean lines and a matte finish.", "45.00",
		"https://images.unsplash.com/photo-1612196808214-b8e1d6145a8c?w=600&h=600&fit=crop", "Home Decor", 50},
	{"Organic Cotton Throw Blanket", "organic-cotton-throw-blanket", "Soft, breathable throw blanket made from 100% organic cotton.", "89.00",
		"https://images.unsplash.com/photo-1555041469-a586c61ea9bc?w=600&h=600&fit=crop", "Textiles", 30},
	{"Handwoven Storage Basket", "handwoven-storage-basket", "Natural seagrass basket for stylish organization.", "35.00",
		"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=600&h=600&fit=crop", "Storage", 100},
	{"Scented Soy Candle", "scented-soy-candle", "Hand-poured soy candle with natural essential oils.", "28.00",
		"https://images.unsplash.com/photo-1602607434266-18dd653d5f19?w=600&h=600&fit=crop", "Candles", 200},
	{"Linen Table Runner", "linen-table-runner", "Elegant linen table runner for everyday dining.", "42.00",
		"https://images.unsplash.com/photo-1616046229478-9901c5536a45?w=600&h=600&fit=crop", "Textiles", 45},
	{"Wooden Serving Board", "wooden-serving-board", "Artisan-made acacia wood serving board.", "55.00",
		"https://images.unsplash.com/photo-1544457070-4cd773b4d71e?w=600&h=600&fit=crop", "Kitchen", 60},
	{"Ceramic Mug Set", "ceramic-mug-set", "Set of 4 handcrafted ceramic mugs.", "48.00",
		"https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=600&h=600&fit=crop", "Kitchen", 80},
	{"Natural Reed Diffuser", "natural-reed-diffuser", "Long-lasting fragrance with natural rattan reeds.", "32.00",
		"https://images.unsplash.com/photo-1608571423902-eed4a5ad8108?w=600&h=600&fit=crop", "Home Fragrance", 150},
}
