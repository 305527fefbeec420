package models

import "time"

type Review struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	TitleID  int64     `gorm:"not null;uniqueIndex:idx_review_title_author"`
	AuthorID string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_title_author;index"`
	Text     string    `gorm:"type:text;not null"`
	Score    int       `gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `gorm:"autoCreateTime;index"`

	// Associations
	Title  Title `gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Author User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
