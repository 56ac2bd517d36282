package model

import "time"

type BlogPost struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt     string    `gorm:"type:text" json:"excerpt"`
	Image       string    `gorm:"type:varchar(500)" json:"image"`
	Content     string    `gorm:"type:text" json:"content"`
	PublishedAt time.Time `gorm:"index;not null" json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
