package model

import "time"

// SliderPhoto is one carousel image of a product. Order is zero-based per product.
type SliderPhoto struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Image     string    `gorm:"type:varchar(500);not null" json:"image"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Order     int       `gorm:"column:order;not null;default:0" json:"order"`
	ProductID uint      `gorm:"not null;index" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (SliderPhoto) TableName() string {
	return "slider_photos"
}
