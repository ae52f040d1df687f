package model

import "time"

type Article struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Excerpt   string    `gorm:"type:text" json:"excerpt"`
	Content   string    `gorm:"type:text" json:"content"`
	Date      string    `gorm:"type:varchar(20)" json:"date"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
