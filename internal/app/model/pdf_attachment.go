package model

import "time"

type PdfAttachment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	FileURL   string    `gorm:"type:varchar(500);not null" json:"fileUrl"`
	ProductID uint      `gorm:"not null;index" json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PdfAttachment) TableName() string {
	return "pdf_attachments"
}
