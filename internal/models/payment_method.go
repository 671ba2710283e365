package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentMethod struct {
	ID                uint           `gorm:"column:pay_method_id;primaryKey;autoIncrement"`
	UserID            uint           `gorm:"not null;index"`
	Reference         string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status            string         `gorm:"type:varchar(20);not null;default:'pending'"`
	IsDefault         bool           `gorm:"not null;default:false"`
	Email             string         `gorm:"type:varchar(255);not null"`
	Last4             string         `gorm:"type:varchar(4)"`
	Brand             string         `gorm:"type:varchar(50)"`
	ExpMonth          string         `gorm:"type:varchar(2)"`
	ExpYear           string         `gorm:"type:varchar(4)"`
	AuthorizationCode string         `gorm:"type:varchar(100)"`
	Authorization     datatypes.JSON `gorm:"column:authorization_data;type:jsonb"`
	ActivatedAt       *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}
