package models

import "time"

// Expense 表示一笔支出记录
// 金额用分存储，避免浮点误差，比如 12.34 元 = 1234 分
type Expense struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	Date               time.Time `gorm:"index;not null" json:"date"`
	AmountCent         int64     `gorm:"not null" json:"-"`
	Description        string    `gorm:"size:255;not null" json:"desc"`
	TagID              uint      `gorm:"index;not null" json:"tag_id"`
	IsRecurring        bool      `json:"is_rec"`
	RecurringFrequency string    `gorm:"size:32" json:"rec_freq"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Tag  Tag  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
