package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalDistinguishesMissingAndNull(t *testing.T) {
	var pp ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Lamp","category_id":null}`), &pp))

	assert.True(t, pp.Name.Set)
	assert.False(t, pp.Name.Null)
	assert.Equal(t, "Lamp", pp.Name.Value)

	assert.True(t, pp.CategoryID.Set)
	assert.True(t, pp.CategoryID.Null)

	assert.False(t, pp.Price.Set)
	assert.False(t, pp.Description.Set)
}

func TestProductPatch_ApplyOnlyTouchesSetFields(t *testing.T) {
	catID := int64(3)
	p := Product{
		ID:          1,
		Name:        "Old",
		Slug:        "old",
		Description: "keep me",
		Price:       decimal.RequireFromString("10.00"),
		CategoryID:  &catID,
		Stock:       5,
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cols, err := ProductPatch{
		Name:       Some("New"),
		Price:      Some(decimal.RequireFromString("12.50")),
		CategoryID: Null[int64](),
	}.Apply(&p, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "price", "category_id", "updated_at"}, cols)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, "old", p.Slug)
	assert.Equal(t, "keep me", p.Description)
	assert.True(t, decimal.RequireFromString("12.5").Equal(p.Price))
	assert.Nil(t, p.CategoryID)
	assert.Equal(t, int64(5), p.Stock)
	assert.Equal(t, now, p.UpdatedAt)
}

func TestProductPatch_NullOnRequiredField(t *testing.T) {
	p := Product{Name: "Old"}
	_, err := ProductPatch{Price: Null[decimal.Decimal]()}.Apply(&p, time.Now())

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "price", fe.Field)
}

func TestProductPatch_EmptyPatchChangesNothing(t *testing.T) {
	p := Product{Name: "Same"}
	cols, err := ProductPatch{}.Apply(&p, time.Now())
	require.NoError(t, err)
	assert.Empty(t, cols)
	assert.True(t, p.UpdatedAt.IsZero())
}

func TestOrderPatch_RejectsUnknownStatus(t *testing.T) {
	o := Order{Status: OrderStatusPending}
	_, err := OrderPatch{Status: Some(OrderStatus("lost"))}.Apply(&o, time.Now())
	assert.Error(t, err)
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestOrderPatch_AnyKnownTransitionAllowed(t *testing.T) {
	o := Order{Status: OrderStatusDelivered}
	cols, err := OrderPatch{Status: Some(OrderStatusPending), Notes: Some("reopened")}.Apply(&o, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "notes", "updated_at"}, cols)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, "reopened", o.Notes)
}

func TestCustomerPatch_NullStringClears(t *testing.T) {
	c := Customer{Email: "a@example.com", Phone: "123"}
	cols, err := CustomerPatch{Phone: Null[string]()}.Apply(&c)
	require.NoError(t, err)
	assert.Equal(t, []string{"phone"}, cols)
	assert.Equal(t, "", c.Phone)
	assert.Equal(t, "a@example.com", c.Email)
}
