package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopadmin/internal/domain/model"
	infraRepo "shopadmin/internal/infra/repository"
	repo "shopadmin/internal/repository"
	"shopadmin/internal/testutil"
	"shopadmin/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func newProductUsecase(gdb *gorm.DB) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewProductGormRepository(gdb),
		infraRepo.NewCategoryGormRepository(gdb),
		testutil.FixedClock{T: testNow},
	)
}

func productInput(name string) usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:  name,
		Price: decimal.RequireFromString("12.50"),
		Stock: 10,
	}
}

func ptr[T any](v T) *T { return &v }

// =====================
// 入力チェック（保存前に弾く）
// =====================

func TestProductUsecase_Create_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		in   usecase.CreateProductInput
		msg  string
	}{
		{"name required", usecase.CreateProductInput{Name: "  ", Price: decimal.NewFromInt(1)}, "name required"},
		{"price zero", usecase.CreateProductInput{Name: "A", Price: decimal.Zero}, "price must be > 0"},
		{"compare below price", usecase.CreateProductInput{Name: "A", Price: decimal.NewFromInt(10), CompareAtPrice: ptr(decimal.NewFromInt(9))}, "compare_at_price must be >= price"},
		{"negative cost", usecase.CreateProductInput{Name: "A", Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(-1)}, "cost must be >= 0"},
		{"negative stock", usecase.CreateProductInput{Name: "A", Price: decimal.NewFromInt(10), Stock: -1}, "stock must be >= 0"},
		{"bad explicit slug", usecase.CreateProductInput{Name: "A", Slug: "Not A Slug", Price: decimal.NewFromInt(10)}, "slug must contain only lowercase letters, digits and hyphens"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			products := new(ProductRepoMock)
			uc := usecase.NewProductUsecase(new(TxManagerMock), products, new(CategoryRepoMock), testutil.FixedClock{T: testNow})

			_, err := uc.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, usecase.IsValidation(err))
			assert.Contains(t, err.Error(), tc.msg)
			products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductUsecase_Create_UnknownCategory(t *testing.T) {
	products := new(ProductRepoMock)
	categories := new(CategoryRepoMock)
	categories.On("FindByID", mock.Anything, int64(99)).Return(model.Category{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(new(TxManagerMock), products, categories, testutil.FixedClock{T: testNow})

	in := productInput("Lamp")
	in.CategoryID = ptr(int64(99))
	_, err := uc.Create(context.Background(), in)

	assert.True(t, usecase.IsNotFound(err))
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// slugの競合リトライ
// =====================

func TestProductUsecase_Create_RetriesWhenSlugTakenOnInsert(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)

	// 1回目の確認では空いていたが、保存時に他の作成と競合した
	products.On("ExistsBySlug", mock.Anything, "red-mug").Return(false, nil).Once()
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool { return p.Slug == "red-mug" })).
		Return(fmt.Errorf("%w: unique", repo.ErrDuplicate)).Once()
	products.On("ExistsBySlug", mock.Anything, "red-mug").Return(true, nil)
	products.On("ExistsBySlug", mock.Anything, "red-mug-1").Return(false, nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool { return p.Slug == "red-mug-1" })).
		Run(func(args mock.Arguments) { args.Get(1).(*model.Product).ID = 7 }).
		Return(nil).Once()

	uc := usecase.NewProductUsecase(new(TxManagerMock), products, new(CategoryRepoMock), testutil.FixedClock{T: testNow})

	p, err := uc.Create(ctx, productInput("Red Mug"))
	require.NoError(t, err)
	assert.Equal(t, "red-mug-1", p.Slug)
	assert.Equal(t, int64(7), p.ID)
	products.AssertExpectations(t)
}

func TestProductUsecase_Create_GivesUpAfterBoundedRetries(t *testing.T) {
	products := new(ProductRepoMock)
	// 候補の確認では空き、保存失敗後の確認では使用済み、を繰り返す
	for i := 0; i < 4; i++ {
		products.On("ExistsBySlug", mock.Anything, mock.Anything).Return(false, nil).Once()
		products.On("ExistsBySlug", mock.Anything, mock.Anything).Return(true, nil).Once()
	}
	products.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	uc := usecase.NewProductUsecase(new(TxManagerMock), products, new(CategoryRepoMock), testutil.FixedClock{T: testNow})

	_, err := uc.Create(context.Background(), productInput("Red Mug"))
	require.Error(t, err)
	assert.True(t, usecase.IsConflict(err))
	assert.Contains(t, err.Error(), "slug already exists")
	products.AssertNumberOfCalls(t, "Create", 4)
}

func TestProductUsecase_Create_SKUConflictIsNotRetried(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("ExistsBySlug", mock.Anything, "lamp").Return(false, nil)
	products.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate).Once()

	uc := usecase.NewProductUsecase(new(TxManagerMock), products, new(CategoryRepoMock), testutil.FixedClock{T: testNow})

	in := productInput("Lamp")
	in.SKU = ptr("SKU-1")
	_, err := uc.Create(context.Background(), in)

	assert.True(t, usecase.IsConflict(err))
	assert.Contains(t, err.Error(), "sku already exists")
	products.AssertNumberOfCalls(t, "Create", 1)
}

// =====================
// SQLite
// =====================

func TestProductUsecase_Create_SameNameGetsSequentialSlugs(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	var slugs []string
	for i := 0; i < 3; i++ {
		p, err := uc.Create(ctx, productInput("Red Mug"))
		require.NoError(t, err)
		slugs = append(slugs, p.Slug)
	}

	assert.Equal(t, []string{"red-mug", "red-mug-1", "red-mug-2"}, slugs)
}

func TestProductUsecase_Create_ExplicitSlugIsProbed(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	in := productInput("Blue Mug")
	in.Slug = "mug"
	first, err := uc.Create(ctx, in)
	require.NoError(t, err)
	second, err := uc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "mug", first.Slug)
	assert.Equal(t, "mug-1", second.Slug)
}

func TestProductUsecase_Create_PunctuationOnlyNameFallsBack(t *testing.T) {
	uc := newProductUsecase(testutil.NewDB(t))

	p, err := uc.Create(context.Background(), productInput("!!!"))
	require.NoError(t, err)
	assert.Equal(t, "product", p.Slug)
}

func TestProductUsecase_Create_DuplicateSKUIsConflict(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	in := productInput("Lamp")
	in.SKU = ptr("SKU-1")
	_, err := uc.Create(ctx, in)
	require.NoError(t, err)

	in.Name = "Other Lamp"
	_, err = uc.Create(ctx, in)
	assert.True(t, usecase.IsConflict(err))
}

func TestProductUsecase_List_SearchMatchesCategoryNameAndKeepsUncategorized(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	uc := newProductUsecase(gdb)

	kitchen := model.Category{Name: "Kitchen", Slug: "kitchen"}
	require.NoError(t, gdb.Create(&kitchen).Error)

	inKitchen := productInput("Serving Board")
	inKitchen.CategoryID = &kitchen.ID
	board, err := uc.Create(ctx, inKitchen)
	require.NoError(t, err)

	// カテゴリなしで、名前に検索語を含む商品
	loose := productInput("Kitchen Timer")
	timer, err := uc.Create(ctx, loose)
	require.NoError(t, err)

	_, err = uc.Create(ctx, productInput("Desk Lamp"))
	require.NoError(t, err)

	items, err := uc.List(ctx, usecase.ListProductsInput{Search: "KITCHEN"})
	require.NoError(t, err)

	ids := []int64{}
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []int64{board.ID, timer.ID}, ids)
}

func TestProductUsecase_List_Filters(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	featured := productInput("Featured")
	featured.IsFeatured = true
	_, err := uc.Create(ctx, featured)
	require.NoError(t, err)

	inactive := productInput("Hidden")
	inactive.IsActive = ptr(false)
	_, err = uc.Create(ctx, inactive)
	require.NoError(t, err)

	got, err := uc.List(ctx, usecase.ListProductsInput{IsFeatured: ptr(true)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Featured", got[0].Name)

	got, err = uc.List(ctx, usecase.ListProductsInput{IsActive: ptr(false)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Hidden", got[0].Name)

	_, err = uc.List(ctx, usecase.ListProductsInput{Limit: 101})
	assert.True(t, usecase.IsValidation(err))
}

func TestProductUsecase_Update_AppliesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	in := productInput("Lamp")
	in.Description = "warm light"
	created, err := uc.Create(ctx, in)
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, model.ProductPatch{
		Price: model.Some(decimal.RequireFromString("20.00")),
	})
	require.NoError(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20").Equal(got.Price))
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, "warm light", got.Description)
	assert.Equal(t, "lamp", got.Slug)
	assert.Equal(t, updated.Slug, got.Slug)
}

func TestProductUsecase_Update_ExplicitSlugCollisionIsConflict(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	_, err := uc.Create(ctx, productInput("Lamp"))
	require.NoError(t, err)
	other, err := uc.Create(ctx, productInput("Chair"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, other.ID, model.ProductPatch{Slug: model.Some("lamp")})
	assert.True(t, usecase.IsConflict(err))
}

func TestProductUsecase_Update_NotFoundAndNullRequired(t *testing.T) {
	ctx := context.Background()
	uc := newProductUsecase(testutil.NewDB(t))

	_, err := uc.Update(ctx, 404, model.ProductPatch{Name: model.Some("x")})
	assert.True(t, usecase.IsNotFound(err))

	p, err := uc.Create(ctx, productInput("Lamp"))
	require.NoError(t, err)
	_, err = uc.Update(ctx, p.ID, model.ProductPatch{Price: model.Null[decimal.Decimal]()})
	assert.True(t, usecase.IsValidation(err))
}

func TestProductUsecase_Delete_WritesAuditLog(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	uc := newProductUsecase(gdb)

	p, err := uc.Create(ctx, productInput("Lamp"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, 1, p.ID))

	_, err = uc.Get(ctx, p.ID)
	assert.True(t, usecase.IsNotFound(err))

	var logs []model.AuditLog
	require.NoError(t, gdb.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionDeleteProduct, logs[0].Action)
	assert.Equal(t, p.ID, logs[0].ResourceID)

	assert.True(t, usecase.IsNotFound(uc.Delete(ctx, 1, p.ID)))
}
