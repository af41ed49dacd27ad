package models

import "time"

// Income 表示一笔收入记录，金额同样用分存储
type Income struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	AmountCent  int64     `gorm:"not null" json:"-"`
	Description string    `gorm:"size:255;not null" json:"desc"`
	TagID       uint      `gorm:"index;not null" json:"tag_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
