package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description,omitempty"`
	CategoryID  *int64          `db:"category_id" json:"categoryId,omitempty"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Image       *string         `db:"image" json:"image,omitempty"`
	Stock       int             `db:"stock" json:"stock"`
	Featured    bool            `db:"featured" json:"featured"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// ProductFilter narrows catalog listings; zero values mean "no constraint".
type ProductFilter struct {
	Name       string
	CategoryID int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}
