package types

import "time"

type Tenant struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Slug                string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name                string    `gorm:"not null" json:"name"`
	MarketplaceClientID string    `json:"marketplaceClientId"`
	Active              bool      `gorm:"default:true" json:"active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Tenant) TableName() string {
	return "tenants"
}
