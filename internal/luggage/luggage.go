package luggage

import (
	internal "github.com/euroviaje/trip-ledger/internal"
	"github.com/euroviaje/trip-ledger/internal/core/common/validation"
)

const (
	TypeClothing = "clothing"
	TypeToiletry = "toiletry"
)

// Item is one packing-list entry. Clothing tracks clean/dirty quantities;
// toiletries only track presence.
type Item struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	UserID        int64  `json:"user_id" gorm:"column:user_id;not null"`
	Name          string `json:"name" gorm:"not null"`
	Type          string `json:"type" gorm:"not null"`
	CleanQuantity int64  `json:"clean_quantity" gorm:"column:clean_quantity"`
	DirtyQuantity int64  `json:"dirty_quantity" gorm:"column:dirty_quantity"`
	HasItem       bool   `json:"has_item" gorm:"column:has_item"`
}

func (Item) TableName() string {
	return "luggage_items"
}

type CreateItemDTO struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	CleanQuantity int64  `json:"clean_quantity"`
	DirtyQuantity int64  `json:"dirty_quantity"`
	HasItem       bool   `json:"has_item"`
}

func (dto CreateItemDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("type", dto.Type).Required().OneOf(TypeClothing, TypeToiletry)
	v.Field("clean_quantity", dto.CleanQuantity).NonNegativeInt(internal.ErrCodeValidationFailed)
	v.Field("dirty_quantity", dto.DirtyQuantity).NonNegativeInt(internal.ErrCodeValidationFailed)
	return v.Validate()
}

// UpdateItemDTO carries a partial update; nil fields are left untouched.
type UpdateItemDTO struct {
	Name          *string `json:"name,omitempty"`
	Type          *string `json:"type,omitempty"`
	CleanQuantity *int64  `json:"clean_quantity,omitempty"`
	DirtyQuantity *int64  `json:"dirty_quantity,omitempty"`
	HasItem       *bool   `json:"has_item,omitempty"`
}

func (dto UpdateItemDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(100)
	}
	if dto.Type != nil {
		v.Field("type", *dto.Type).OneOf(TypeClothing, TypeToiletry)
	}
	if dto.CleanQuantity != nil {
		v.Field("clean_quantity", *dto.CleanQuantity).NonNegativeInt(internal.ErrCodeValidationFailed)
	}
	if dto.DirtyQuantity != nil {
		v.Field("dirty_quantity", *dto.DirtyQuantity).NonNegativeInt(internal.ErrCodeValidationFailed)
	}
	return v.Validate()
}

var ErrItemNotFound = internal.NewNotFoundError("luggage item not found", internal.ErrCodeItemNotFound)

// Default packing list seeded the first time a user opens the luggage
// screen with no items of their own.
var (
	DefaultClothing = []string{
		"Poleras",
		"Jeans",
		"Polerones",
		"Calcetines",
		"Pantalones cortos",
		"Pijamas",
		"Toallas",
		"Calzoncillos",
		"Chaquetas",
	}
	DefaultToiletries = []string{
		"Pasta de diente",
		"Cepillo de diente",
		"Shampoo",
		"Jabon",
		"Perfume",
	}
)
