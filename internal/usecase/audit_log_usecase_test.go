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
)

func TestAuditLogUsecase_List_Filters(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewDB(t)

	products := newProductUsecase(gdb)
	p, err := products.Create(ctx, productInput("Lamp"))
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, 1, p.ID))

	customers := newCustomerUsecase(gdb)
	c, _, err := customers.Create(ctx, usecase.CreateCustomerInput{Email: "jane@example.com"})
	require.NoError(t, err)
	require.NoError(t, customers.Delete(ctx, 2, c.ID))

	uc := usecase.NewAuditLogUsecase(infraRepo.NewAuditLogGormRepository(gdb))

	all, err := uc.List(ctx, usecase.ListAuditLogsInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// 新しい順
	assert.Equal(t, model.AuditActionDeleteCustomer, all[0].Action)

	onlyProducts, err := uc.List(ctx, usecase.ListAuditLogsInput{ResourceType: "product"})
	require.NoError(t, err)
	require.Len(t, onlyProducts, 1)
	assert.Equal(t, p.ID, onlyProducts[0].ResourceID)
	assert.Contains(t, onlyProducts[0].BeforeJSON, `"slug":"lamp"`)
	assert.Empty(t, onlyProducts[0].AfterJSON)

	byActor, err := uc.List(ctx, usecase.ListAuditLogsInput{ActorUserID: ptr(int64(2))})
	require.NoError(t, err)
	require.Len(t, byActor, 1)
	assert.Equal(t, c.ID, byActor[0].ResourceID)

	_, err = uc.List(ctx, usecase.ListAuditLogsInput{Limit: 201})
	assert.True(t, usecase.IsValidation(err))
	_, err = uc.List(ctx, usecase.ListAuditLogsInput{Offset: -1})
	assert.True(t, usecase.IsValidation(err))
}
