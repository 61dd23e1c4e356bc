package models

import "time"

type Vehicle struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Make  string `gorm:"size:50" json:"make"`
	Model string `gorm:"size:50" json:"model"`
	Year  int    `json:"year"`
	Plate string `gorm:"size:15;index" json:"plate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
