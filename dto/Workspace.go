package dto

import (
	"talentbridge.com/marketplace"
	"talentbridge.com/types"
)

type WorkspaceResponse struct {
	AccessGranted      bool                    `json:"accessGranted"`
	AccessDeniedReason string                  `json:"accessDeniedReason,omitempty"`
	Transaction        *marketplace.Transaction `json:"transaction,omitempty"`
	Listing            *marketplace.Listing     `json:"listing,omitempty"`
	Provider           *marketplace.User        `json:"provider,omitempty"`
	Customer           *marketplace.User        `json:"customer,omitempty"`
	Messages           []types.ProjectMessage   `json:"messages,omitempty"`
	NdaRequired        bool                    `json:"ndaRequired"`
	NdaAccepted        bool                    `json:"ndaAccepted"`
}

type SendMessageResponse struct {
	Message types.ProjectMessage `json:"message"`
}

type AcceptNdaResponse struct {
	NdaAcceptedAt string `json:"ndaAcceptedAt"`
}
