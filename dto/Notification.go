package dto

type TransitionNotificationDTO struct {
	TransactionID string `json:"transactionId"`
	Transition    string `json:"transition"`
	ListingTitle  string `json:"listingTitle"`
	CustomerName  string `json:"customerName"`
	ProviderID    string `json:"providerId"`
	OccurredAt    string `json:"occurredAt"`
}

type WaitlistWelcomeDTO struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	TenantSlug string `json:"tenantSlug"`
}

type StudentBlockDTO struct {
	UserID    string `json:"userId"`
	Reason    string `json:"reason"`
	BlockedBy string `json:"blockedBy"`
}

type StudentResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Active      bool   `json:"active"`
}

type MessagingDigestDTO struct {
	Month        string `json:"month"`
	Transactions int64  `json:"transactions"`
	Messages     int64  `json:"messages"`
	Unread       int64  `json:"unread"`
}
