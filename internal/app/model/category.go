package model

import "time"

// Category is a catalog section. Products keep living when their category is removed.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	Label       string    `gorm:"type:varchar(255)" json:"category"` // free-text classification label
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Products []ProductRef `gorm:"foreignKey:CategoryID" json:"products,omitempty"`

	// Filled by list queries only
	ProductCount int64 `gorm:"->;-:migration" json:"productCount"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryRef is the lightweight shape embedded in product responses
type CategoryRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Label string `json:"category"`
}

func (CategoryRef) TableName() string {
	return "categories"
}
