package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PATCH入力の1フィールド。
// キーが無い=Set false、nullが来た=Set true かつ Null true。
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// null を許さない項目にnullが来たとき
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func notNull(field string) error {
	return &FieldError{Field: field, Reason: "must not be null"}
}

// 商品のPATCH
type ProductPatch struct {
	Name           Optional[string]          `json:"name"`
	Slug           Optional[string]          `json:"slug"`
	Description    Optional[string]          `json:"description"`
	Price          Optional[decimal.Decimal] `json:"price"`
	CompareAtPrice Optional[decimal.Decimal] `json:"compare_at_price"`
	Cost           Optional[decimal.Decimal] `json:"cost"`
	SKU            Optional[string]          `json:"sku"`
	Stock          Optional[int64]           `json:"stock"`
	ImageURL       Optional[string]          `json:"image_url"`
	Images         Optional[[]string]        `json:"images"`
	CategoryID     Optional[int64]           `json:"category_id"`
	IsActive       Optional[bool]            `json:"is_active"`
	IsFeatured     Optional[bool]            `json:"is_featured"`
}

// Applyは指定された項目だけpへ反映し、変更した列名を返す。
func (pp ProductPatch) Apply(p *Product, now time.Time) ([]string, error) {
	cols := make([]string, 0, 8)

	if pp.Name.Set {
		if pp.Name.Null {
			return nil, notNull("name")
		}
		p.Name = pp.Name.Value
		cols = append(cols, "name")
	}
	if pp.Slug.Set {
		if pp.Slug.Null {
			return nil, notNull("slug")
		}
		p.Slug = pp.Slug.Value
		cols = append(cols, "slug")
	}
	if pp.Description.Set {
		p.Description = pp.Description.Value
		cols = append(cols, "description")
	}
	if pp.Price.Set {
		if pp.Price.Null {
			return nil, notNull("price")
		}
		p.Price = pp.Price.Value
		cols = append(cols, "price")
	}
	if pp.CompareAtPrice.Set {
		p.CompareAtPrice = decimal.NullDecimal{Decimal: pp.CompareAtPrice.Value, Valid: !pp.CompareAtPrice.Null}
		cols = append(cols, "compare_at_price")
	}
	if pp.Cost.Set {
		if pp.Cost.Null {
			return nil, notNull("cost")
		}
		p.Cost = pp.Cost.Value
		cols = append(cols, "cost")
	}
	if pp.SKU.Set {
		if pp.SKU.Null {
			p.SKU = nil
		} else {
			sku := pp.SKU.Value
			p.SKU = &sku
		}
		cols = append(cols, "sku")
	}
	if pp.Stock.Set {
		if pp.Stock.Null {
			return nil, notNull("stock")
		}
		p.Stock = pp.Stock.Value
		cols = append(cols, "stock")
	}
	if pp.ImageURL.Set {
		p.ImageURL = pp.ImageURL.Value
		cols = append(cols, "image_url")
	}
	if pp.Images.Set {
		images := pp.Images.Value
		if images == nil {
			images = []string{}
		}
		p.Images = datatypes.JSONSlice[string](images)
		cols = append(cols, "images")
	}
	if pp.CategoryID.Set {
		if pp.CategoryID.Null {
			p.CategoryID = nil
		} else {
			id := pp.CategoryID.Value
			p.CategoryID = &id
		}
		cols = append(cols, "category_id")
	}
	if pp.IsActive.Set {
		if pp.IsActive.Null {
			return nil, notNull("is_active")
		}
		p.IsActive = pp.IsActive.Value
		cols = append(cols, "is_active")
	}
	if pp.IsFeatured.Set {
		if pp.IsFeatured.Null {
			return nil, notNull("is_featured")
		}
		p.IsFeatured = pp.IsFeatured.Value
		cols = append(cols, "is_featured")
	}

	if len(cols) > 0 {
		p.UpdatedAt = now
		cols = append(cols, "updated_at")
	}
	return cols, nil
}

// 注文のPATCH。金額と明細は作成後に変えられない。
type OrderPatch struct {
	Status          Optional[OrderStatus] `json:"status"`
	Notes           Optional[string]      `json:"notes"`
	ShippingAddress Optional[string]      `json:"shipping_address"`
	BillingAddress  Optional[string]      `json:"billing_address"`
}

func (op OrderPatch) Apply(o *Order, now time.Time) ([]string, error) {
	cols := make([]string, 0, 4)

	if op.Status.Set {
		if op.Status.Null {
			return nil, notNull("status")
		}
		if !op.Status.Value.Valid() {
			return nil, &FieldError{Field: "status", Reason: "unknown status"}
		}
		o.Status = op.Status.Value
		cols = append(cols, "status")
	}
	if op.Notes.Set {
		o.Notes = op.Notes.Value
		cols = append(cols, "notes")
	}
	if op.ShippingAddress.Set {
		o.ShippingAddress = op.ShippingAddress.Value
		cols = append(cols, "shipping_address")
	}
	if op.BillingAddress.Set {
		o.BillingAddress = op.BillingAddress.Value
		cols = append(cols, "billing_address")
	}

	if len(cols) > 0 {
		o.UpdatedAt = now
		cols = append(cols, "updated_at")
	}
	return cols, nil
}

type CustomerPatch struct {
	Email     Optional[string] `json:"email"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	Phone     Optional[string] `json:"phone"`
	Address   Optional[string] `json:"address"`
	City      Optional[string] `json:"city"`
	Country   Optional[string] `json:"country"`
}

func (cp CustomerPatch) Apply(c *Customer) ([]string, error) {
	cols := make([]string, 0, 7)

	if cp.Email.Set {
		if cp.Email.Null {
			return nil, notNull("email")
		}
		c.Email = cp.Email.Value
		cols = append(cols, "email")
	}

	//文字列項目はnullなら空にする
	set := func(f Optional[string], dst *string, col string) {
		if !f.Set {
			return
		}
		*dst = f.Value
		cols = append(cols, col)
	}
	set(cp.FirstName, &c.FirstName, "first_name")
	set(cp.LastName, &c.LastName, "last_name")
	set(cp.Phone, &c.Phone, "phone")
	set(cp.Address, &c.Address, "address")
	set(cp.City, &c.City, "city")
	set(cp.Country, &c.Country, "country")

	return cols, nil
}
