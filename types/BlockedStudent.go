package types

import "time"

type BlockedStudent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"userId"`
	Reason    string    `json:"reason"`
	BlockedBy string    `json:"blockedBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (BlockedStudent) TableName() string {
	return "blocked_students"
}
