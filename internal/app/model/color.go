package model

import "time"

type Color struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	Label       string    `gorm:"type:varchar(255)" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Color) TableName() string {
	return "colors"
}

// ColorAttachment links a color to a product. At most one row per pair.
type ColorAttachment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ColorID   uint      `gorm:"not null;uniqueIndex:idx_color_product" json:"colorId"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_color_product;index" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`

	Color   *Color   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"color,omitempty"`
	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ColorAttachment) TableName() string {
	return "color_attachments"
}
