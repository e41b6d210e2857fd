package usecase_test

import (
	"context"
	"testing"

	"shopadmin/internal/domain/model"
	infraRepo "shopadmin/internal/infra/repository"
	"shopadmin/internal/testutil"
	"shopadmin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCustomerUsecase(gdb *gorm.DB) *usecase.CustomerUsecase {
	return usecase.NewCustomerUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewCustomerGormRepository(gdb),
		testutil.FixedClock{T: testNow},
	)
}

func TestCustomerUsecase_Create_IdempotentOnEmail(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	uc := newCustomerUsecase(gdb)

	first, created, err := uc.Create(ctx, usecase.CreateCustomerInput{Email: "Jane@Example.com", FirstName: "Jane"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "jane@example.com", first.Email)

	// 2回目は既存を返し、内容は上書きしない
	again, created, err := uc.Create(ctx, usecase.CreateCustomerInput{Email: "jane@example.com", FirstName: "Other"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Jane", again.FirstName)

	assert.Equal(t, int64(1), countRows(t, gdb, &model.Customer{}))
}

func TestCustomerUsecase_Create_InvalidEmail(t *testing.T) {
	uc := newCustomerUsecase(testutil.NewDB(t))

	for _, email := range []string{"", "not-an-email"} {
		_, _, err := uc.Create(context.Background(), usecase.CreateCustomerInput{Email: email})
		assert.True(t, usecase.IsValidation(err), "email=%q", email)
	}
}

func TestCustomerUsecase_ListSearch(t *testing.T) {
	ctx := context.Background()
	uc := newCustomerUsecase(testutil.NewDB(t))

	for _, in := range []usecase.CreateCustomerInput{
		{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
		{Email: "bob@example.com", FirstName: "Bob", LastName: "Smith"},
	} {
		_, _, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	got, err := uc.List(ctx, usecase.ListCustomersInput{Search: "SMI"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob@example.com", got[0].Email)

	n, err := uc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCustomerUsecase_Update(t *testing.T) {
	ctx := context.Background()
	uc := newCustomerUsecase(testutil.NewDB(t))

	jane, _, err := uc.Create(ctx, usecase.CreateCustomerInput{Email: "jane@example.com", City: "Osaka"})
	require.NoError(t, err)
	_, _, err = uc.Create(ctx, usecase.CreateCustomerInput{Email: "bob@example.com"})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, jane.ID, model.CustomerPatch{Phone: model.Some("090-0000")})
	require.NoError(t, err)
	assert.Equal(t, "090-0000", updated.Phone)
	assert.Equal(t, "Osaka", updated.City)

	_, err = uc.Update(ctx, jane.ID, model.CustomerPatch{Email: model.Some("BOB@example.com")})
	assert.True(t, usecase.IsConflict(err))

	_, err = uc.Update(ctx, jane.ID, model.CustomerPatch{Email: model.Null[string]()})
	assert.True(t, usecase.IsValidation(err))
}

func TestCustomerUsecase_Delete_KeepsOrders(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)
	uc := newCustomerUsecase(gdb)

	c, _, err := uc.Create(ctx, usecase.CreateCustomerInput{Email: "jane@example.com"})
	require.NoError(t, err)

	orders := newOrderUsecase(gdb, &testutil.SequenceOrderNumbers{})
	in := orderInput("10.00", item(1, 1, "10.00"))
	in.CustomerID = &c.ID
	o, err := orders.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, 1, c.ID))

	_, err = uc.Get(ctx, c.ID)
	assert.True(t, usecase.IsNotFound(err))

	got, err := orders.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, &c.ID, got.CustomerID)
}
