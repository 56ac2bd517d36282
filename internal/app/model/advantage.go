package model

import "time"

// Advantage is a marketing blurb shown on product pages, ordered globally.
type Advantage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Image     string    `gorm:"type:varchar(500)" json:"image"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Order     int       `gorm:"column:order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Attachments []AdvantageAttachment `gorm:"foreignKey:AdvantageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// Derived from Attachments
	ProductIDs []uint `gorm:"-" json:"productIds"`
}

func (Advantage) TableName() string {
	return "advantages"
}

// FillProductIDs copies the attachment product ids into ProductIDs
func (a *Advantage) FillProductIDs() {
	a.ProductIDs = make([]uint, 0, len(a.Attachments))
	for _, att := range a.Attachments {
		a.ProductIDs = append(a.ProductIDs, att.ProductID)
	}
}

type AdvantageAttachment struct {
	AdvantageID uint      `gorm:"primaryKey;index" json:"advantageId"`
	ProductID   uint      `gorm:"primaryKey;index" json:"productId"`
	CreatedAt   time.Time `json:"createdAt"`

	Product *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (AdvantageAttachment) TableName() string {
	return "advantage_attachments"
}
