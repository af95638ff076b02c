package services

import (
	"fmt"
	"sync"

	"talentbridge.com/marketplace"
)

// MarketplaceService manages the marketplace SDK client for the application
type MarketplaceService struct {
	client *marketplace.Client
	once   sync.Once
}

var (
	marketplaceService     *MarketplaceService
	marketplaceServiceOnce sync.Once
)

// GetMarketplaceService returns a singleton instance of MarketplaceService
func GetMarketplaceService() *MarketplaceService {
	marketplaceServiceOnce.Do(func() {
		marketplaceService = &MarketplaceService{}
	})
	return marketplaceService
}

// Initialize sets up the marketplace client from the environment
func (s *MarketplaceService) Initialize() {
	s.once.Do(func() {
		s.client = marketplace.NewClient()
	})
}

// GetClient returns the marketplace client
func (s *MarketplaceService) GetClient() (*marketplace.Client, error) {
	if s.client == nil {
		return nil, fmt.Errorf("marketplace client not initialized")
	}
	return s.client, nil
}
