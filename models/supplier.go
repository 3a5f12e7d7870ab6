package models

import "time"

type Supplier struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PharmacyId string    `gorm:"index;size:36;not null" json:"pharmacy_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Email      string    `gorm:"size:255" json:"email"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
