package models

import "time"

type Comment struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	ReviewID int64     `gorm:"not null;index"`
	AuthorID string    `gorm:"type:uuid;not null;index"`
	Text     string    `gorm:"type:text;not null"`
	PubDate  time.Time `gorm:"autoCreateTime;index"`

	// Associations
	Review Review `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Author User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
