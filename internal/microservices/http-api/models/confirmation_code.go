package models

import "time"

// ConfirmationCode is the single live one-time code of a user.
type ConfirmationCode struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null"`
	Code      string    `gorm:"size:12;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (ConfirmationCode) TableName() string {
	return "confirmation_codes"
}
