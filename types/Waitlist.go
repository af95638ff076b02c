package types

import "time"

type WaitlistEntry struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Role       string    `json:"role"`
	TenantSlug string    `gorm:"index" json:"tenantSlug"`
	Welcomed   bool      `gorm:"default:false" json:"welcomed"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
