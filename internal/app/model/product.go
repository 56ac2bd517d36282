package model

import (
	"time"

	"gorm.io/datatypes"
)

// ProductSpec is one row of the technical specification table
type ProductSpec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

type Product struct {
	ID          uint                              `gorm:"primarykey" json:"id"`
	Name        string                            `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string                            `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string                            `gorm:"type:text" json:"description"`
	Content     string                            `gorm:"type:text" json:"content"` // rich HTML block
	Metadata    string                            `gorm:"type:text" json:"metadata"`
	Specs       datatypes.JSONSlice[ProductSpec] `json:"specs"`
	Image       string                            `gorm:"type:varchar(500)" json:"image"`
	CategoryID  *uint                             `gorm:"index" json:"categoryId"`
	CreatedAt   time.Time                         `json:"createdAt"`
	UpdatedAt   time.Time                         `json:"updatedAt"`

	Category *CategoryRef `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductRef is the lightweight {id, name} shape listed under a category
type ProductRef struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	CategoryID *uint  `json:"-"`
}

func (ProductRef) TableName() string {
	return "products"
}
