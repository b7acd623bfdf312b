package models

import "time"

// DropUnits is the fixed run size of a drop. Drops are never restocked.
const DropUnits = 999

// Product represents an item in the ZORU catalog.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string   `json:"title" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Slug        string   `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"sizes" gorm:"serializer:json"`
	Category    string   `json:"category" gorm:"index;type:varchar(50)"`
	IsDrop      bool     `json:"is_drop"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
