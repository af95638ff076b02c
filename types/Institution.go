package types

import "time"

type Institution struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Domain       string    `gorm:"uniqueIndex;not null" json:"domain"`
	Country      string    `json:"country"`
	ContactEmail string    `json:"contactEmail"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Institution) TableName() string {
	return "institutions"
}
