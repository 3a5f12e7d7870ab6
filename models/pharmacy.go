package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pharmacy struct {
	ID            string    `gorm:"primary_key;size:36" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name" binding:"required" validate:"required"`
	LicenseNumber string    `gorm:"size:100;uniqueIndex" json:"license_number"`
	Address       string    `gorm:"size:255" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Pharmacy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
