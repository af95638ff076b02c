package marketplace

// Transaction is the marketplace transaction entity. Its lifecycle is owned by
// the marketplace transaction-process engine; this service only reads
// LastTransition and reads/writes the free-form metadata sidecar.
type Transaction struct {
	ID             string                 `json:"id"`
	LastTransition string                 `json:"lastTransition"`
	CustomerID     string                 `json:"customerId"`
	ProviderID     string                 `json:"providerId"`
	ListingID      string                 `json:"listingId"`
	Metadata       map[string]interface{} `json:"metadata"`
}

type Listing struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	AuthorID          string `json:"authorId"`
	Description       string `json:"description"`
	ConfidentialBrief string `json:"confidentialBrief,omitempty"`
	RequiresNDA       bool   `json:"requiresNda"`
}

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// WorkspaceMetadata is the typed view over the metadata sidecar keys this
// service owns. depositConfirmed and workHoldCleared are toggled by separate
// admin actions and are deliberately kept as two independent fields.
type WorkspaceMetadata struct {
	DepositConfirmed   bool   `json:"depositConfirmed"`
	DepositConfirmedAt string `json:"depositConfirmedAt,omitempty"`
	DepositConfirmedBy string `json:"depositConfirmedBy,omitempty"`
	WorkHoldCleared    bool   `json:"workHoldCleared"`
	NdaAccepted        bool   `json:"ndaAccepted"`
	NdaAcceptedAt      string `json:"ndaAcceptedAt,omitempty"`
	NdaAcceptedBy      string `json:"ndaAcceptedBy,omitempty"`
}

func ParseWorkspaceMetadata(m map[string]interface{}) WorkspaceMetadata {
	return WorkspaceMetadata{
		DepositConfirmed:   boolAt(m, "depositConfirmed"),
		DepositConfirmedAt: stringAt(m, "depositConfirmedAt"),
		DepositConfirmedBy: stringAt(m, "depositConfirmedBy"),
		WorkHoldCleared:    boolAt(m, "workHoldCleared"),
		NdaAccepted:        boolAt(m, "ndaAccepted"),
		NdaAcceptedAt:      stringAt(m, "ndaAcceptedAt"),
		NdaAcceptedBy:      stringAt(m, "ndaAcceptedBy"),
	}
}

func boolAt(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	v, ok := m[key].(bool)
	return ok && v
}

func stringAt(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	v, _ := m[key].(string)
	return v
}
