package types

import "time"

const (
	SenderTypeCustomer = "customer"
	SenderTypeProvider = "provider"
)

// Attachment describes a file referenced from a workspace message. The file
// itself lives in the marketplace CDN; we only keep the descriptor.
type Attachment struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type ProjectMessage struct {
	ID            string       `gorm:"primaryKey;size:26" json:"id"`
	TransactionID string       `gorm:"index;not null" json:"transactionId"`
	SenderID      string       `gorm:"not null" json:"senderId"`
	SenderName    string       `json:"senderName"`
	SenderType    string       `gorm:"not null" json:"senderType"`
	Content       string       `gorm:"size:5000;not null" json:"content"`
	Attachments   []Attachment `gorm:"serializer:json" json:"attachments"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	ReadAt        *time.Time   `json:"readAt"`
}

func (ProjectMessage) TableName() string {
	return "project_messages"
}
