package models

import (
	"time"

	"gorm.io/datatypes"
)

type Booking struct {
	ID        uint           `gorm:"column:booking_id;primaryKey;autoIncrement"`
	UserID    uint           `gorm:"not null;index"`
	RoomID    uint           `gorm:"not null;index"`
	Reference string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount    int64          `gorm:"not null"`
	Status    string         `gorm:"type:varchar(20);not null;default:'pending'"`
	PaidAt    *time.Time
	Payment   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}
