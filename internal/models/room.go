package models

import "time"

type Room struct {
	ID        uint      `gorm:"column:room_id;primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null"`
	RoomType  string    `gorm:"type:varchar(100)"`
	Price     int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string { return "hotel_rooms" }
