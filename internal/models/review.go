package models

import "time"

type Review struct {
	ID        uint      `gorm:"column:review_id;primaryKey;autoIncrement"`
	RoomID    uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Rating    float64   `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
